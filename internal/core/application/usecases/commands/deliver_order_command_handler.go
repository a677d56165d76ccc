package commands

import (
	"context"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// DeliverOrderCommandHandler marks an accepted order delivered. Replaying the
// event yields an invalid transition; another courier gets order.ErrNotOrderCourier.
type DeliverOrderCommandHandler struct {
	transition orderTransition
}

func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	guard *concurrency.Guard,
	clock ports.Clock,
	publisher ports.EventPublisher,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, guard: guard, clock: clock, publisher: publisher},
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.Ref(), func(o *order.Order, now time.Time) error {
		return o.Deliver(cmd.CourierID(), now)
	})
}
