package notify

import (
	"context"
	"log/slog"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

var _ ports.EventPublisher = &LogPublisher{}

// LogPublisher writes events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		m := NewMessage(e)
		p.logger.InfoContext(ctx, "order event",
			"type", m.Type,
			"order_id", m.OrderID,
			"display_no", m.DisplayNo,
			"delivery_no", m.DeliveryNo,
			"workday", m.WorkdayKey,
			"customer_id", m.CustomerID,
			"courier_id", m.CourierID,
			"actor_id", m.ActorID,
			"total_price", m.TotalPrice.StringFixed(2),
			"late_minutes", m.LateMinutes,
		)
	}
	return nil
}
