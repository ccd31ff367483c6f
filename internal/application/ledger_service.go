package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/domain/entity"
	repo "github.com/oksasatya/mywallet/internal/domain/repository"
)

// EventPublisher is satisfied by *helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// MovementRecorder is satisfied by *metrics.Metrics.
type MovementRecorder interface {
	RecordMovement(kind string, amount float64)
}

// LedgerService records movements and builds statements.
type LedgerService struct {
	Movements repo.MovementRepository
	Events    EventPublisher   // optional
	Metrics   MovementRecorder // optional
	Logger    *logrus.Logger
}

func NewLedgerService(movements repo.MovementRepository, events EventPublisher, recorder MovementRecorder, logger *logrus.Logger) *LedgerService {
	return &LedgerService{Movements: movements, Events: events, Metrics: recorder, Logger: logger}
}

// Deposit stores a credit of amount for u.
func (s *LedgerService) Deposit(ctx context.Context, u *entity.User, amount float64, description *string) (*entity.Movement, error) {
	if amount == 0 {
		amount = 0 // never store -0
	}
	m := &entity.Movement{UserID: u.ID, Name: u.Name, Deposit: &amount, Description: description}
	return s.record(ctx, u, m, "deposit", amount)
}

// Withdraw stores a debit; the amount is negated before it is persisted.
func (s *LedgerService) Withdraw(ctx context.Context, u *entity.User, amount float64, description *string) (*entity.Movement, error) {
	signed := -amount
	if signed == 0 {
		signed = 0 // never store -0
	}
	m := &entity.Movement{UserID: u.ID, Name: u.Name, Withdraw: &signed, Description: description}
	return s.record(ctx, u, m, "withdraw", signed)
}

// Statement lists u's movements in insertion order.
func (s *LedgerService) Statement(ctx context.Context, u *entity.User) ([]entity.Movement, error) {
	return s.Movements.ListByUser(ctx, u.ID)
}

func (s *LedgerService) record(ctx context.Context, u *entity.User, m *entity.Movement, kind string, amount float64) (*entity.Movement, error) {
	if err := s.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.RecordMovement(kind, amount)
	}
	s.publish(ctx, u, m, kind, amount)
	return m, nil
}

// publish is best-effort: a broker failure is logged and never fails the write.
func (s *LedgerService) publish(ctx context.Context, u *entity.User, m *entity.Movement, kind string, amount float64) {
	if s.Events == nil {
		return
	}
	evt := entity.MovementRecorded{
		MovementID: m.ID,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Kind:       kind,
		Amount:     amount,
		CreatedAt:  m.CreatedAt,
	}
	if m.Description != nil {
		evt.Description = *m.Description
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(c, entity.MovementRecordedType, evt); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("movement_id", m.ID).Warn("publish movement event failed")
	}
}
