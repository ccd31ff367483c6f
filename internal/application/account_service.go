package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	repo "github.com/oksasatya/mywallet/internal/domain/repository"
	"github.com/oksasatya/mywallet/pkg/helpers"
)

// AccountService handles registration, login and token resolution.
type AccountService struct {
	Users      repo.UserRepository
	Sessions   repo.SessionRepository
	BcryptCost int
	Logger     *logrus.Logger
}

func NewAccountService(users repo.UserRepository, sessions repo.SessionRepository, bcryptCost int, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, Sessions: sessions, BcryptCost: bcryptCost, Logger: logger}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register creates a user. The confirmation is only compared, never stored.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	existing, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return u, nil
}

// Login checks the credentials and opens a new session. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sess := &entity.Session{UserID: u.ID, Token: uuid.NewString()}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("create session failed")
		}
		return nil, err
	}
	return sess, nil
}

// Authenticate resolves a bearer token to its user. A token without a session
// and a session whose user is gone both yield ErrUnauthorized.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	sess, err := s.Sessions.GetByToken(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, sess.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		if s.Logger != nil {
			s.Logger.WithField("session_id", sess.ID).Warn("session references a missing user")
		}
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
