package commands

import (
	"context"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// CancelOrderCommandHandler cancels an accepted order on behalf of its courier.
// The courier's large-order count is not reduced.
type CancelOrderCommandHandler struct {
	transition orderTransition
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	guard *concurrency.Guard,
	clock ports.Clock,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, guard: guard, clock: clock, publisher: publisher},
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.Ref(), func(o *order.Order, now time.Time) error {
		return o.Cancel(cmd.CourierID(), now)
	})
}
