package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/pkg/helpers"
	"github.com/oksasatya/growth-partner/pkg/mailer"
	mailtpl "github.com/oksasatya/growth-partner/pkg/mailer/templates"
)

const prefetch = 16

type sender interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

type worker struct {
	logger   *logrus.Logger
	mail     sender
	defaults map[string]any
	timeout  time.Duration
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-notification-worker", cfg.Env, cfg.LogLevel)

	if !cfg.NotificationsEnabled {
		logger.Info("NOTIFICATIONS_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue, prefetch)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	msgs, err := consumer.Deliveries(cfg.AppName + "-notification-worker")
	if err != nil {
		consumer.Close()
		log.Fatalf("consume: %v", err)
	}

	w := &worker{
		logger:   logger,
		mail:     mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase),
		defaults: mailtpl.ToMap(mailtpl.NewBaseData(cfg)),
		timeout:  15 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			w.handle(context.Background(), msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQNotificationQueue).Info("notification worker listening")
	<-stop
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle renders and sends one job. Undecodable or unrenderable jobs are
// dropped; send failures go back on the queue.
func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	var job mailer.NotificationJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		w.logger.WithError(err).WithField("message_id", msg.MessageId).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}
	entry := w.logger.WithFields(logrus.Fields{"type": job.Type, "message_id": msg.MessageId})
	if job.To == "" {
		entry.Warn("notification without recipient")
		_ = msg.Nack(false, false)
		return
	}

	out, err := w.compose(&job)
	if err != nil {
		entry.WithError(err).Error("render failed")
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	id, err := w.mail.Send(ctx, out)
	if err != nil {
		// one retry; a second failure is most likely a rejected message
		if msg.Redelivered {
			entry.WithError(err).Error("send failed after redelivery; dropping")
			_ = msg.Nack(false, false)
			return
		}
		entry.WithError(err).Warn("send failed; requeueing")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
	entry.WithField("mailgun_id", id).Info("notification sent")
}

// compose fills template defaults and renders typed jobs. Untyped jobs are
// sent with their own subject and bodies.
func (w *worker) compose(job *mailer.NotificationJob) (mailer.Message, error) {
	helpers.EnsureRecipientAndEmail(job)
	helpers.MergeDefaults(job, w.defaults)

	out := mailer.Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if job.Type != "" {
		s, t, h, err := mailtpl.Render(job.Type, job.Data)
		if err != nil {
			return mailer.Message{}, err
		}
		out.Subject, out.Text, out.HTML = strings.TrimSpace(s), t, h
		out.Tags = []string{job.Type}
	}
	if out.Subject == "" {
		out.Subject = helpers.SubjectFor(job)
	}
	return out, nil
}
