// Package service provides functions to publish domain events to RabbitMQ.
// Publishing is best effort: errors are logged and returned so callers can
// ignore them without interrupting the request flow.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/fyyur/internal/queue"
)

// Publisher publishes listing events.
type Publisher interface {
    PublishListingCreated(ctx context.Context, ev queue.ListingCreatedEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishListingCreated(context.Context, queue.ListingCreatedEvent) error {
    return nil
}

// defaultDialTimeout bounds the TCP connect to the broker.
const defaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes to the durable listing.created queue.  It dials
// the broker per publish, so a broker outage never blocks startup.
type AMQPPublisher struct {
    URL         string
    DialTimeout time.Duration
    Logger      *zap.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *zap.Logger) *AMQPPublisher {
    if logger == nil {
        logger = zap.NewNop()
    }
    return &AMQPPublisher{URL: url, DialTimeout: defaultDialTimeout, Logger: logger}
}

// PublishListingCreated publishes ev as a persistent JSON message.
func (p *AMQPPublisher) PublishListingCreated(ctx context.Context, ev queue.ListingCreatedEvent) error {
    if err := p.publish(ctx, queue.ListingCreatedQueue, ev); err != nil {
        p.Logger.Warn("rabbitmq publish failed", zap.String("queue", queue.ListingCreatedQueue), zap.String("kind", ev.Kind), zap.Error(err))
        return err
    }
    return nil
}

func (p *AMQPPublisher) publish(ctx context.Context, name string, event any) error {
    conn, err := amqp.DialConfig(p.URL, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      amqp.DefaultDial(p.DialTimeout),
    })
    if err != nil {
        return fmt.Errorf("dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        name,  // name
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,   // args
    ); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    return ch.PublishWithContext(ctx,
        "",    // default exchange
        name,  // routing key = queue name
        false, // mandatory
        false, // immediate
        pub,
    )
}
