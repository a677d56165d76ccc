package commands

import (
	"context"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/lookup"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to accepted.
//
// The order lock makes the status check and the update one critical section,
// so of two couriers racing for the same order exactly one wins and the other
// gets errs.InvalidTransitionError. Large orders additionally take the
// dispatch lock: the balance check and the count increment must see every
// other large acceptance, not only those of the same order.
//
// Example:
//
//	cmd, _ := NewAcceptOrderCommand(OrderRef{DisplayNo: 7}, rider)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // already taken
//	case errors.Is(err, ErrBalanceRejected):
//	    // too many large orders, leave it for someone else
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	guard      *concurrency.Guard
	clock      ports.Clock
	publisher  ports.EventPublisher
	policy     Policy
}

func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	guard *concurrency.Guard,
	clock ports.Clock,
	publisher ports.EventPublisher,
	policy Policy,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		clock:      clock,
		publisher:  publisher,
		policy:     policy,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	located, err := lookup.Locate(ctx, h.uowFactory.Create().OrderRepository(),
		kernel.NewWorkdayKey(now), cmd.Ref().Workday, cmd.Ref().DisplayNo)
	if err != nil {
		return nil, err
	}

	var accepted *order.Order
	err = h.guard.WithOrderLock(ctx, located.Workday(), located.DisplayNo(), func(ctx context.Context) error {
		accept := func(ctx context.Context) error {
			var acceptErr error
			accepted, acceptErr = h.accept(ctx, cmd, located.Workday(), now)
			return acceptErr
		}
		if located.IsLarge(h.policy.LargeOrderQuantity) {
			return h.guard.WithDispatchLock(ctx, accept)
		}
		return accept(ctx)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, accepted.PullEvents())
	return accepted, nil
}

func (h AcceptOrderCommandHandler) accept(
	ctx context.Context,
	cmd AcceptOrderCommand,
	workday kernel.WorkdayKey,
	now time.Time,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, workday, cmd.Ref().DisplayNo)
	if err != nil {
		return nil, err
	}

	week := kernel.NewWorkdayKey(now).Week()
	snapshot := services.BalanceSnapshot{Week: week, ExemptID: h.policy.PrimaryAdminID}
	limit := h.policy.DefaultBalanceLimit
	if o.Status() == order.Pending && o.IsLarge(h.policy.LargeOrderQuantity) {
		if snapshot, limit, err = h.loadBalance(ctx, uow, week); err != nil {
			return nil, err
		}
	}

	balancer, err := services.NewDispatchBalancer(limit)
	if err != nil {
		return nil, err
	}

	large, err := balancer.Dispatch(o, cmd.Courier(), snapshot, h.policy.LargeOrderQuantity, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if large {
		if err = uow.LargeOrderCountRepository().Increment(ctx, week, cmd.Courier().ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h AcceptOrderCommandHandler) loadBalance(
	ctx context.Context,
	uow UoW,
	week kernel.WeekKey,
) (services.BalanceSnapshot, int, error) {
	counts, err := uow.LargeOrderCountRepository().CountsForWeek(ctx, week)
	if err != nil {
		return services.BalanceSnapshot{}, 0, err
	}

	inactive, err := uow.CourierActivityRepository().ListInactive(ctx)
	if err != nil {
		return services.BalanceSnapshot{}, 0, err
	}

	limit, err := balanceLimit(ctx, uow.SettingsRepository(), h.policy.DefaultBalanceLimit)
	if err != nil {
		return services.BalanceSnapshot{}, 0, err
	}

	return services.BalanceSnapshot{
		Week:     week,
		Counts:   counts,
		Inactive: inactive,
		ExemptID: h.policy.PrimaryAdminID,
	}, limit, nil
}

// balanceLimit returns the stored limit, or fallback when none was set.
func balanceLimit(ctx context.Context, settings ports.SettingsRepository, fallback int) (int, error) {
	limit, found, err := settings.BalanceLimit(ctx)
	if err != nil {
		return 0, err
	}
	if !found {
		return fallback, nil
	}
	return limit, nil
}
