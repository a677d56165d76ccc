package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "order_events"

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Reopener replaces a channel the broker has closed.
type Reopener func() (Channel, error)

var _ ports.EventPublisher = &AMQPPublisher{}

// AMQPPublisher sends every event to a durable topic exchange using the
// event type as routing key.
type AMQPPublisher struct {
	ch       Channel
	reopen   Reopener
	exchange string
	mu       sync.Mutex
}

func NewAMQPPublisher(ch Channel, exchange string) (*AMQPPublisher, error) {
	if ch == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := declare(ch, exchange); err != nil {
		return nil, err
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// WithReopen lets the publisher replace a closed channel on the next publish.
func (p *AMQPPublisher) WithReopen(reopen Reopener) *AMQPPublisher {
	p.reopen = reopen
	return p
}

func (p *AMQPPublisher) Publish(ctx context.Context, events ...order.Event) error {
	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	var errList []error
	for _, e := range events {
		body, err := NewMessage(e).Marshal()
		if err != nil {
			errList = append(errList, fmt.Errorf("encode %s: %w", e.Type, err))
			continue
		}
		err = p.publish(ctx, string(e.Type), amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Timestamp:    e.OccurredAt.UTC(),
			Body:         body,
		})
		if err != nil {
			errList = append(errList, fmt.Errorf("publish %s for order %d: %w", e.Type, e.DisplayNo, err))
		}
	}
	return errors.Join(errList...)
}

// publish retries once on a fresh channel when the current one is closed.
func (p *AMQPPublisher) publish(ctx context.Context, key string, msg amqp.Publishing) error {
	if p.ch == nil {
		if err := p.reopenChannel(); err != nil {
			return err
		}
	}
	err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
	if p.reopen == nil || !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	if err = p.reopenChannel(); err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg)
}

func (p *AMQPPublisher) reopenChannel() error {
	p.ch = nil
	if p.reopen == nil {
		return amqp.ErrClosed
	}
	ch, err := p.reopen()
	if err != nil {
		return fmt.Errorf("reopen amqp channel: %w", err)
	}
	if err = declare(ch, p.exchange); err != nil {
		return err
	}
	p.ch = ch
	return nil
}

func declare(ch Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return nil
}

// Connection owns the broker connection and the channel handed to the publisher.
type Connection struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return &Connection{url: url, conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ch
}

// Reopen opens a fresh channel, dialing again when the connection itself is
// gone.
func (c *Connection) Reopen() (Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil {
		_ = c.ch.Close()
		c.ch = nil
	}
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			return nil, fmt.Errorf("dial amqp: %w", err)
		}
		c.conn = conn
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	c.ch = ch
	return ch, nil
}

func (c *Connection) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
