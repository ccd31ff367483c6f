package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/domain/entity"
)

// ErrBadPayload marks messages that can never be delivered and should not be
// requeued.
var ErrBadPayload = errors.New("bad notification payload")

// Sender delivers a single email. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Message is a rendered plain-text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// MovementMessage renders the notification for a recorded movement.
func MovementMessage(evt entity.MovementRecorded) Message {
	verb, subject := "received a deposit of", "New deposit in your wallet"
	if evt.Kind == "withdraw" {
		verb, subject = "made a withdrawal of", "New withdrawal from your wallet"
	}
	amount := evt.Amount
	if amount < 0 {
		amount = -amount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", evt.Name)
	fmt.Fprintf(&b, "You %s %.2f", verb, amount)
	if evt.Description != "" {
		fmt.Fprintf(&b, " (%s)", evt.Description)
	}
	fmt.Fprintf(&b, " on %s UTC.\n\n", evt.CreatedAt.UTC().Format("2006-01-02 15:04"))
	b.WriteString("Open your statement to see your current balance.\n")

	return Message{To: evt.Email, Subject: subject, Text: b.String()}
}

// NotifyMovement decodes a movement.recorded body and sends its notification.
// Undecodable bodies and events without a recipient yield ErrBadPayload.
func NotifyMovement(ctx context.Context, s Sender, body []byte) error {
	var evt entity.MovementRecorded
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if evt.Email == "" {
		return fmt.Errorf("%w: missing recipient for movement %s", ErrBadPayload, evt.MovementID)
	}
	msg := MovementMessage(evt)
	return s.Send(ctx, msg.To, msg.Subject, msg.Text, "")
}

// LogSender writes emails to the logger instead of sending them.
type LogSender struct {
	Logger *logrus.Logger
}

func (l LogSender) Send(_ context.Context, to, subject, text, _ string) error {
	l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail send disabled; dropping email\n" + text)
	return nil
}
