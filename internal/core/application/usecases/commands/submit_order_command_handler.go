package commands

import (
	"context"
	"errors"
	"time"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/core/ports"
)

// SubmitOrderResult is what the customer-facing side shows after checkout.
type SubmitOrderResult struct {
	OrderID    kernel.UUID
	Workday    kernel.WorkdayKey
	DisplayNo  int
	DeliveryNo string
	Order      *order.Order
}

// SubmitOrderCommandHandler creates pending orders. Display numbers are
// assigned under the workday lock so that concurrent submissions in one
// workday get distinct, contiguous numbers.
type SubmitOrderCommandHandler struct {
	uowFactory SubmitUoWFactory
	guard      *concurrency.Guard
	clock      ports.Clock
	publisher  ports.EventPublisher
	policy     Policy
}

func NewSubmitOrderCommandHandler(
	uowFactory SubmitUoWFactory,
	guard *concurrency.Guard,
	clock ports.Clock,
	publisher ports.EventPublisher,
	policy Policy,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		clock:      clock,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle validates the minimum order value, then assigns the next display
// number and stores the order. A duplicate display number, which only happens
// when another process writes the same workday, is retried a few times.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	total, _ := order.SumItems(cmd.Items())
	if total.LessThan(h.policy.MinOrderTotal) {
		return SubmitOrderResult{}, ErrBelowMinimumOrder
	}

	now := h.clock.Now()
	workday := kernel.NewWorkdayKey(now)

	var (
		created *order.Order
		err     error
	)
	for range maxSubmitAttempts {
		err = h.guard.WithWorkdayLock(ctx, workday, func(ctx context.Context) error {
			var createErr error
			created, createErr = h.create(ctx, cmd, workday, now)
			return createErr
		})
		if !errors.Is(err, order.ErrDuplicateDisplayNo) {
			break
		}
	}
	if err != nil {
		return SubmitOrderResult{}, err
	}

	publish(ctx, h.publisher, created.PullEvents())

	return SubmitOrderResult{
		OrderID:    created.ID(),
		Workday:    created.Workday(),
		DisplayNo:  created.DisplayNo(),
		DeliveryNo: created.DeliveryNo(),
		Order:      created,
	}, nil
}

func (h SubmitOrderCommandHandler) create(
	ctx context.Context,
	cmd SubmitOrderCommand,
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

	open, found, err := uow.SettingsRepository().IntakeOpen(ctx)
	if err != nil {
		return nil, err
	}
	if found && !open {
		return nil, ErrOrderIntakeClosed
	}

	orderRepo := uow.OrderRepository()
	displayNo, err := orderRepo.NextDisplayNo(ctx, workday)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		displayNo,
		order.NewDeliveryNo(),
		cmd.Customer(),
		cmd.Items(),
		cmd.Details(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
