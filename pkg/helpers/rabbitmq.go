package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errors.New("rabbitmq publisher is not connected")

// dialQueue connects and declares the durable queue shared by the API
// (publisher) and the notification worker (consumer).
func dialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return conn, ch, nil
}

func closeAMQP(conn *amqp.Connection, ch *amqp.Channel) {
	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		_ = conn.Close()
	}
}

// RabbitPublisher publishes persistent JSON messages to one queue through the
// default exchange. Publishes are serialized on the single channel.
type RabbitPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
	AppID string
}

func NewRabbitPublisher(url, queue, appID string) (*RabbitPublisher, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, Queue: queue, AppID: appID}, nil
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	closeAMQP(p.conn, p.ch)
	p.conn, p.ch = nil, nil
}

// PublishJSON encodes body and publishes it with a fresh message id.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPublisherClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		return ErrPublisherClosed
	}
	return p.ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		AppId:        p.AppID,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// RabbitConsumer reads one queue with manual acks.
type RabbitConsumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

// NewRabbitConsumer connects and limits unacked deliveries to prefetch.
func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	conn, ch, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		closeAMQP(conn, ch)
		return nil, fmt.Errorf("qos: %w", err)
	}
	return &RabbitConsumer{conn: conn, ch: ch, Queue: queue}, nil
}

// Deliveries starts consuming. The channel closes when the consumer does.
func (c *RabbitConsumer) Deliveries(tag string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.Queue, tag, false, false, false, false, nil)
}

func (c *RabbitConsumer) Close() {
	closeAMQP(c.conn, c.ch)
}
