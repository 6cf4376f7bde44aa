package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/kioskpos/bundle_service/internal/core/domain"
)

// Producer publishes compensation events to a durable queue consumed by the
// back office (refund worker or manual review).
type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

func NewProducer(url, queue string) (*Producer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Producer{conn: conn, channel: channel, queue: queue}, nil
}

func (p *Producer) PublishCompensation(ctx context.Context, event domain.CompensationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Producer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// FallbackProducer is used when the broker is unavailable at startup so the
// service can still sell bundles; compensation events land in the logs for
// manual pickup.
type FallbackProducer struct{}

func (p *FallbackProducer) PublishCompensation(ctx context.Context, event domain.CompensationEvent) error {
	log.Printf("WARN: compensation queue unavailable, logging event instead (key=%s tx=%s amount=%d reason=%s)",
		event.IdempotencyKey, event.TransactionID, event.Amount, event.Reason)
	return nil
}
