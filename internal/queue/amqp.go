package queue

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPReceiver pulls from a RabbitMQ queue via amqp091-go, batching
// deliveries from a single long-lived consumer channel up to the caller's
// maxCount/maxWait.
type AMQPReceiver struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	deliveries <-chan amqp.Delivery
}

// NewAMQPReceiver dials url and opens a manual-ack consumer on queueName.
// prefetch bounds how many unacked deliveries the broker will hold
// in-flight for this consumer; it should track the worker's max in-flight
// message count.
func NewAMQPReceiver(url, queueName string, prefetch int) (*AMQPReceiver, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("queue: set qos: %w", err)
	}
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("queue: consume %s: %w", queueName, err)
	}
	return &AMQPReceiver{conn: conn, channel: ch, deliveries: deliveries}, nil
}

func (r *AMQPReceiver) Receive(ctx context.Context, maxCount int, maxWait time.Duration) ([]Message, error) {
	var msgs []Message
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	for len(msgs) < maxCount {
		select {
		case d, ok := <-r.deliveries:
			if !ok {
				return msgs, fmt.Errorf("queue: delivery channel closed")
			}
			delivery := d
			msgs = append(msgs, Message{
				Body:     delivery.Body,
				Complete: func(context.Context) error { return delivery.Ack(false) },
				Abandon:  func(context.Context) error { return delivery.Nack(false, true) },
			})
		case <-timer.C:
			return msgs, nil
		case <-ctx.Done():
			return msgs, ctx.Err()
		}
	}
	return msgs, nil
}

func (r *AMQPReceiver) Close(context.Context) error {
	r.channel.Close()
	return r.conn.Close()
}
