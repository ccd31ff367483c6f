package repository

import (
	"context"

	"github.com/oksasatya/mywallet/internal/domain/entity"
)

// SessionRepository stores login sessions keyed by token.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
}
