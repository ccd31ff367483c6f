package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/domain/repository"
)

type MovementRepository struct {
	db DB
}

func NewMovementRepository(db DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO movements (user_id, name, deposit, withdraw, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at
	`, m.UserID, m.Name, m.Deposit, m.Withdraw, m.Description)

	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert movement: %w", translate(err))
	}
	return nil
}

// ListByUser returns the user's movements in insertion order.
func (r *MovementRepository) ListByUser(ctx context.Context, userID string) ([]entity.Movement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, user_id::text, name, deposit, withdraw, description, created_at
		FROM movements
		WHERE user_id = $1
		ORDER BY seq ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Deposit, &m.Withdraw, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}

var _ repository.MovementRepository = (*MovementRepository)(nil)
