package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// ActivityLogFile is the file, inside the activity directory, that events
// are appended to.
const ActivityLogFile = "activity.log"

// StartActivityConsumer connects to RabbitMQ, declares the listing.created
// queue (durable) and appends every message to <dir>/activity.log.  It
// reconnects with backoff until ctx is cancelled, then returns ctx.Err().
// A message that cannot be handled is rejected without requeue.
func StartActivityConsumer(ctx context.Context, url, dir string, logger *zap.Logger) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            logger.Warn("activity-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect
        logger.Info("activity-consumer: connected", zap.String("queue", ListingCreatedQueue))

        err = consumeLoop(ctx, conn, dir, logger)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warn("activity-consumer: consume loop ended; reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, dir string, logger *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warn("activity-consumer: set QoS failed", zap.Error(err))
    }

    if _, err := ch.QueueDeclare(ListingCreatedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(ListingCreatedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(d.Body, dir); err != nil {
                logger.Error("activity-consumer: handle message failed", zap.Error(err))
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(body []byte, dir string) error {
    var ev ListingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Kind == "" {
        return errors.New("event without kind")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    f, err := os.OpenFile(filepath.Join(dir, ActivityLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev ListingCreatedEvent) string {
    switch ev.Kind {
    case KindShow:
        return fmt.Sprintf("[%s] Show listed | venue_id=%d | artist_id=%d | start_time=%s\n",
            ev.CreatedAt, ev.VenueID, ev.ArtistID, ev.StartTime)
    default:
        return fmt.Sprintf("[%s] %s listed | id=%d | name=%q | city=%q | state=%s\n",
            ev.CreatedAt, kindTitle(ev.Kind), ev.ID, ev.Name, ev.City, ev.State)
    }
}

func kindTitle(kind string) string {
    switch kind {
    case KindVenue:
        return "Venue"
    case KindArtist:
        return "Artist"
    }
    return kind
}
