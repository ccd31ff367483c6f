package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/domain/repository"
)

func newRepo(t *testing.T, ttl time.Duration) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepository(rdb, ttl), mr
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo, mr := newRepo(t, 0)
	ctx := context.Background()

	s := &entity.Session{UserID: "u-1", Token: "tok-1"}
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())
	assert.Equal(t, time.Duration(0), mr.TTL(sessionKey("tok-1")))

	got, err := repo.GetByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))
}

func TestSessionRepository_ManySessionsPerUser(t *testing.T) {
	repo, _ := newRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: "u-1", Token: "a"}))
	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: "u-1", Token: "b"}))

	a, err := repo.GetByToken(ctx, "a")
	require.NoError(t, err)
	b, err := repo.GetByToken(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, a.UserID, b.UserID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionRepository_DuplicateToken(t *testing.T) {
	repo, _ := newRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: "u-1", Token: "same"}))
	err := repo.Create(ctx, &entity.Session{UserID: "u-2", Token: "same"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestSessionRepository_NotFound(t *testing.T) {
	repo, _ := newRepo(t, 0)

	_, err := repo.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_TTL(t *testing.T) {
	repo, mr := newRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Session{UserID: "u-1", Token: "short"}))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey("short")))

	mr.FastForward(2 * time.Hour)
	_, err := repo.GetByToken(ctx, "short")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
