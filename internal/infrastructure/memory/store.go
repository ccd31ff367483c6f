// Package memory provides in-process repositories for tests and local runs
// without PostgreSQL or Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/internal/domain/repository"
)

// Store implements the user, session and movement repositories over maps.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	sessions  map[string]entity.Session
	movements []entity.Movement

	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		sessions: make(map[string]entity.Session),
	}
}

// Users returns a UserRepository view of the store.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Sessions returns a SessionRepository view of the store.
func (s *Store) Sessions() repository.SessionRepository { return sessionRepo{s} }

// Movements returns a MovementRepository view of the store.
func (s *Store) Movements() repository.MovementRepository { return movementRepo{s} }

// SessionCount reports how many sessions belong to userID.
func (s *Store) SessionCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

// UserCount reports how many users exist.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// DeleteUser removes a user, leaving its sessions orphaned.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type sessionRepo struct{ s *Store }

func (r sessionRepo) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.sessions[sess.Token]; ok {
		return repository.ErrDuplicate
	}
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now().UTC()
	r.s.sessions[sess.Token] = *sess
	return nil
}

func (r sessionRepo) GetByToken(_ context.Context, token string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

type movementRepo struct{ s *Store }

func (r movementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r movementRepo) ListByUser(_ context.Context, userID string) ([]entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]entity.Movement, 0)
	for _, m := range r.s.movements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}
