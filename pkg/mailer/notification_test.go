package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mywallet/internal/domain/entity"
)

type sent struct{ to, subject, text string }

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, _ string) error {
	f.got = append(f.got, sent{to, subject, text})
	return f.err
}

var at = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestMovementMessage_Deposit(t *testing.T) {
	msg := MovementMessage(entity.MovementRecorded{
		Name: "Maria", Email: "maria@example.com", Kind: "deposit",
		Amount: 100, Description: "salary", CreatedAt: at,
	})

	assert.Equal(t, "maria@example.com", msg.To)
	assert.Equal(t, "New deposit in your wallet", msg.Subject)
	assert.Contains(t, msg.Text, "Hi Maria,")
	assert.Contains(t, msg.Text, "You received a deposit of 100.00 (salary) on 2024-03-01 09:30 UTC.")
}

func TestMovementMessage_WithdrawShowsAbsoluteAmount(t *testing.T) {
	msg := MovementMessage(entity.MovementRecorded{
		Name: "Maria", Email: "maria@example.com", Kind: "withdraw", Amount: -42.5, CreatedAt: at,
	})

	assert.Equal(t, "New withdrawal from your wallet", msg.Subject)
	assert.Contains(t, msg.Text, "You made a withdrawal of 42.50 on")
	assert.NotContains(t, msg.Text, "(")
}

func TestNotifyMovement(t *testing.T) {
	s := &fakeSender{}
	body := []byte(`{"movement_id":"m-1","name":"Maria","email":"maria@example.com","kind":"deposit","amount":10,"created_at":"2024-03-01T09:30:00Z"}`)

	require.NoError(t, NotifyMovement(context.Background(), s, body))
	require.Len(t, s.got, 1)
	assert.Equal(t, "maria@example.com", s.got[0].to)
}

func TestNotifyMovement_BadPayload(t *testing.T) {
	s := &fakeSender{}

	err := NotifyMovement(context.Background(), s, []byte(`not json`))
	assert.ErrorIs(t, err, ErrBadPayload)

	err = NotifyMovement(context.Background(), s, []byte(`{"movement_id":"m-1","kind":"deposit"}`))
	assert.ErrorIs(t, err, ErrBadPayload)
	assert.Empty(t, s.got)
}

func TestNotifyMovement_SendFailureIsNotBadPayload(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}

	err := NotifyMovement(context.Background(), s, []byte(`{"email":"maria@example.com","kind":"deposit"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadPayload)
}

func TestLogSender(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	require.NoError(t, LogSender{Logger: logger}.Send(context.Background(), "a@b.co", "hi", "body", ""))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "a@b.co", hook.LastEntry().Data["to"])
}
