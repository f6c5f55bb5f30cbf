// Package event publishes booking lifecycle events for downstream consumers
// (notifications, analytics). Publishing is best effort and never blocks a
// booking from completing.
package event

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "moviebooking.events"

type BookingEvent struct {
	Reference string    `json:"reference"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`
	SeatCount int       `json:"seatCount"`
	Occurs    time.Time `json:"occurredAt"`
}

type Publisher interface {
	BookingCreated(ctx context.Context, event BookingEvent) error
	BookingCancelled(ctx context.Context, event BookingEvent) error
}

type RabbitPublisher struct {
	ch *amqp.Channel
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) BookingCreated(ctx context.Context, event BookingEvent) error {
	return p.publish(ctx, "booking.created", event)
}

func (p *RabbitPublisher) BookingCancelled(ctx context.Context, event BookingEvent) error {
	return p.publish(ctx, "booking.cancelled", event)
}

func (p *RabbitPublisher) publish(ctx context.Context, key string, event BookingEvent) error {
	event.Occurs = time.Now()

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   event.Occurs,
		Body:        body,
	}

	return p.ch.PublishWithContext(ctx, exchangeName, key, false, false, msg)
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(context.Context, BookingEvent) error { return nil }

func (NoopPublisher) BookingCancelled(context.Context, BookingEvent) error { return nil }
