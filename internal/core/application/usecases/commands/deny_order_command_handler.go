package commands

import (
	"context"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// DenyOrderCommandHandler lets an administrator reject a pending order.
// A second deny, or a deny after a courier accepted, is an invalid transition.
type DenyOrderCommandHandler struct {
	transition orderTransition
	policy     Policy
}

func NewDenyOrderCommandHandler(
	uowFactory OrderUoWFactory,
	guard *concurrency.Guard,
	clock ports.Clock,
	publisher ports.EventPublisher,
	policy Policy,
) DenyOrderCommandHandler {
	return DenyOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, guard: guard, clock: clock, publisher: publisher},
		policy:     policy,
	}
}

func (h DenyOrderCommandHandler) Handle(ctx context.Context, cmd DenyOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.requireAdmin(cmd.AdminID()); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.Ref(), func(o *order.Order, now time.Time) error {
		return o.Deny(cmd.AdminID(), now)
	})
}
