package entity

import "time"

// MovementRecordedType is the AMQP message type of MovementRecorded.
const MovementRecordedType = "movement.recorded"

// MovementRecorded is published after a movement has been persisted.
type MovementRecorded struct {
	MovementID  string    `json:"movement_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Kind        string    `json:"kind"` // deposit or withdraw
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
