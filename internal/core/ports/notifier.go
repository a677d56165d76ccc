package ports

import (
	"context"

	"courierbot/internal/core/domain/model/order"
)

// EventPublisher delivers lifecycle events to the messaging side.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
