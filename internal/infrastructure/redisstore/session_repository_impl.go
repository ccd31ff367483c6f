package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/domain/repository"
)

// SessionRepository stores each session as a hash under session:token:<token>.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository returns a Redis-backed session store. A zero ttl keeps
// sessions until they are removed by hand.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:token:" + token
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	key := sessionKey(s.Token)

	ok, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if ok > 0 {
		return fmt.Errorf("insert session: %w", repository.ErrDuplicate)
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"id":         s.ID,
		"user_id":    s.UserID,
		"created_at": s.CreatedAt.Format(time.RFC3339Nano),
	})
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.rdb.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("select session: %w", repository.ErrNotFound)
	}
	s := &entity.Session{ID: data["id"], UserID: data["user_id"], Token: token}
	if ts, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		s.CreatedAt = ts
	}
	return s, nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
