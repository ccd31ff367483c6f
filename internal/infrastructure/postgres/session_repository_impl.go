package postgres

import (
	"context"
	"fmt"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/domain/repository"
)

// SessionRepository keeps sessions in the sessions table. Used when
// SESSION_STORE=postgres.
type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO sessions (user_id, token)
		VALUES ($1, $2)
		RETURNING id::text, created_at
	`, s.UserID, s.Token)

	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("insert session: %w", translate(err))
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	s := &entity.Session{}
	row := r.db.QueryRow(ctx, `
		SELECT id::text, user_id::text, token, created_at
		FROM sessions
		WHERE token = $1
	`, token)
	if err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("select session: %w", translate(err))
	}
	return s, nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
