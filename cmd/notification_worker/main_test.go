package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/growth-partner/pkg/mailer"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "<id>", nil
}

func newWorker(s sender) *worker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &worker{logger: logger, mail: s, defaults: map[string]any{"AppName": "growth-partner"}, timeout: time.Second}
}

func deliver(w *worker, body string) *ackRecorder {
	ack := &ackRecorder{}
	w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte(body)})
	return ack
}

func TestHandleRendersTypedJob(t *testing.T) {
	s := &fakeSender{}
	ack := deliver(newWorker(s), `{"type":"goal_due_soon","to":"ann@x.com","data":{"Name":"Ann","Goal":"Learn Go","DaysLeft":2,"Body":"2 day(s) left"}}`)

	assert.True(t, ack.acked)
	require.Len(t, s.sent, 1)
	msg := s.sent[0]
	assert.Equal(t, "ann@x.com", msg.To)
	assert.Equal(t, "Learn Go is due in 2 day(s)", msg.Subject)
	assert.Contains(t, msg.Text, "-- growth-partner")
	assert.Equal(t, []string{mailer.TypeGoalDueSoon}, msg.Tags)
}

func TestHandleUntypedJobFallsBackToDefaultSubject(t *testing.T) {
	s := &fakeSender{}
	ack := deliver(newWorker(s), `{"to":"ann@x.com","text":"hello"}`)

	assert.True(t, ack.acked)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Notification", s.sent[0].Subject)
	assert.Empty(t, s.sent[0].Tags)
}

func TestHandleDropsBadJobs(t *testing.T) {
	for name, body := range map[string]string{
		"invalid json": `{`,
		"no recipient": `{"type":"motivational"}`,
		"unknown type": `{"type":"nope","to":"ann@x.com"}`,
	} {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			ack := deliver(newWorker(s), body)
			assert.True(t, ack.nacked)
			assert.False(t, ack.requeue)
			assert.Empty(t, s.sent)
		})
	}
}

func TestHandleRequeuesSendFailure(t *testing.T) {
	ack := deliver(newWorker(&fakeSender{err: errors.New("mailgun down")}), `{"type":"motivational","to":"ann@x.com"}`)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)

	again := &ackRecorder{}
	w := newWorker(&fakeSender{err: errors.New("mailgun rejected recipient")})
	w.handle(context.Background(), amqp.Delivery{
		Acknowledger: again,
		Redelivered:  true,
		Body:         []byte(`{"type":"motivational","to":"ann@x.com"}`),
	})
	assert.True(t, again.nacked)
	assert.False(t, again.requeue, "a redelivered message is not requeued again")
}
