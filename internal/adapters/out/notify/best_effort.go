package notify

import (
	"context"
	"log/slog"
	"time"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

const defaultQueueSize = 256

var _ ports.EventPublisher = &BestEffort{}

// BestEffort decouples command handlers from the broker. Publish only queues
// the events; Run delivers them one batch at a time, each bounded by the
// timeout. Failures and overflow are logged and the events are dropped.
type BestEffort struct {
	next    ports.EventPublisher
	timeout time.Duration
	queue   chan []order.Event
	logger  *slog.Logger
}

func NewBestEffort(next ports.EventPublisher, timeout time.Duration, logger *slog.Logger) *BestEffort {
	return &BestEffort{
		next:    next,
		timeout: timeout,
		queue:   make(chan []order.Event, defaultQueueSize),
		logger:  logger.With("component", "notifier"),
	}
}

// Publish never blocks and never fails.
func (b *BestEffort) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}
	select {
	case b.queue <- events:
	default:
		b.logger.WarnContext(ctx, "Notification queue is full, events dropped", "count", len(events))
	}
	return nil
}

// Run delivers queued events until ctx is cancelled, then drains what is
// left with a fresh deadline per batch.
func (b *BestEffort) Run(ctx context.Context) error {
	for {
		select {
		case events := <-b.queue:
			b.deliver(ctx, events)
		case <-ctx.Done():
			b.drain()
			return nil
		}
	}
}

func (b *BestEffort) drain() {
	for {
		select {
		case events := <-b.queue:
			b.deliver(context.Background(), events)
		default:
			return
		}
	}
}

func (b *BestEffort) deliver(ctx context.Context, events []order.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	if err := b.next.Publish(ctx, events...); err != nil {
		b.logger.WarnContext(ctx, "Failed to publish order events",
			"count", len(events),
			"type", events[0].Type,
			"display_no", events[0].DisplayNo,
			"error", err,
		)
	}
}
