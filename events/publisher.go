// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	Exchange = "prostore.events"

	UserCreated = "user.created"
	OrderPlaced = "order.placed"
	OrderPaid   = "order.paid"
)

type Envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel channel
	log     *zap.Logger
	now     func() time.Time
}

func NewRabbitPublisher(url string, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, channel: ch, log: log, now: time.Now}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(Envelope{
		Type:      eventType,
		Timestamp: p.now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	p.log.Debug("Publishing event", zap.String("type", eventType))
	return p.channel.PublishWithContext(ctx, Exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
}

func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
