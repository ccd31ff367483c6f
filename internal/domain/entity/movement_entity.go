package entity

import "time"

// Movement is a single signed ledger entry. Exactly one of Deposit or
// Withdraw is set: deposits are positive, withdrawals are stored negated.
type Movement struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Deposit     *float64  `json:"deposit,omitempty"`
	Withdraw    *float64  `json:"withdraw,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Amount returns the signed value of the movement.
func (m Movement) Amount() float64 {
	switch {
	case m.Deposit != nil:
		return *m.Deposit
	case m.Withdraw != nil:
		return *m.Withdraw
	}
	return 0
}

// Balance sums the signed amounts of movements.
func Balance(movements []Movement) float64 {
	var total float64
	for _, m := range movements {
		total += m.Amount()
	}
	return total
}
