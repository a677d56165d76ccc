package commands

import (
	"context"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// NotifyLateDeliveriesCommandHandler emits order.late for every accepted order
// of today's and the previous workday whose acceptance is older than the
// threshold. It runs on a schedule and repeats the notice on each run until
// the order is delivered or cancelled. Nothing is written.
type NotifyLateDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewNotifyLateDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
) NotifyLateDeliveriesCommandHandler {
	return NotifyLateDeliveriesCommandHandler{uowFactory: uowFactory, clock: clock, publisher: publisher}
}

// Handle returns the number of late orders found.
func (h NotifyLateDeliveriesCommandHandler) Handle(ctx context.Context, cmd NotifyLateDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	today := kernel.NewWorkdayKey(now)

	accepted, err := h.uowFactory.Create().OrderRepository().
		ListByStatus(ctx, today.Previous(), today, order.Accepted)
	if err != nil {
		return 0, err
	}

	var events []order.Event
	for _, o := range accepted {
		if o.AcceptedAt() == nil || now.Sub(*o.AcceptedAt()) < cmd.Threshold() {
			continue
		}
		if e, ok := o.LateEvent(now); ok {
			events = append(events, e)
		}
	}

	publish(ctx, h.publisher, events)
	return len(events), nil
}
