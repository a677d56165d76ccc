package commands

import (
	"context"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// publish hands committed events to the notifier. Delivery is best effort:
// the transition already committed, so a failure here is not reported.
func publish(ctx context.Context, publisher ports.EventPublisher, events []order.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
