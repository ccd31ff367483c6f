package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/config"
	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/pkg/helpers"
	"github.com/oksasatya/mywallet/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env, cfg.LogLevel)

	if !cfg.EventsEnabled() {
		log.Fatal("RabbitMQ not configured")
	}

	var sender mailer.Sender = mailer.LogSender{Logger: logger}
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Warn("MAIL_SEND_ENABLED=false; notifications are logged, not sent")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx := context.Background()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			fields := logrus.Fields{"message_id": msg.MessageId, "type": msg.Type}
			if msg.Type != entity.MovementRecordedType {
				helpers.LogInfo(logger, "skipping unknown message type", fields)
				_ = msg.Ack(false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mailer.NotifyMovement(c, sender, msg.Body)
			cancel()
			switch {
			case errors.Is(err, mailer.ErrBadPayload):
				helpers.LogError(logger, "dropping bad message", err, fields)
				_ = msg.Nack(false, false)
			case err != nil:
				helpers.LogError(logger, "send failed", err, fields)
				_ = msg.Nack(false, true)
			default:
				_ = msg.Ack(false)
			}
		}
		close(done)
	}()

	helpers.LogInfo(logger, "notify worker listening", logrus.Fields{"queue": cfg.RabbitMQEventsQueue})
	<-stop
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
