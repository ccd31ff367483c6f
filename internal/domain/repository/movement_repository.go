package repository

import (
	"context"

	"github.com/oksasatya/mywallet/internal/domain/entity"
)

// MovementRepository persists ledger movements.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	ListByUser(ctx context.Context, userID string) ([]entity.Movement, error)
}
