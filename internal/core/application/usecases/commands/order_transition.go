package commands

import (
	"context"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/lookup"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// orderTransition runs one lifecycle event against one order:
// locate, lock, load for update, apply, store, commit, then notify.
// A failure anywhere before commit leaves the stored order untouched.
type orderTransition struct {
	uowFactory OrderUoWFactory
	guard      *concurrency.Guard
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func (t orderTransition) run(
	ctx context.Context,
	ref OrderRef,
	apply func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	now := t.clock.Now()
	located, err := lookup.Locate(ctx, t.uowFactory.Create().OrderRepository(),
		kernel.NewWorkdayKey(now), ref.Workday, ref.DisplayNo)
	if err != nil {
		return nil, err
	}

	var changed *order.Order
	err = t.guard.WithOrderLock(ctx, located.Workday(), located.DisplayNo(), func(ctx context.Context) error {
		var applyErr error
		changed, applyErr = t.apply(ctx, located.Workday(), located.DisplayNo(), now, apply)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, t.publisher, changed.PullEvents())
	return changed, nil
}

func (t orderTransition) apply(
	ctx context.Context,
	workday kernel.WorkdayKey,
	displayNo int,
	now time.Time,
	apply func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, workday, displayNo)
	if err != nil {
		return nil, err
	}

	if err = apply(o, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
