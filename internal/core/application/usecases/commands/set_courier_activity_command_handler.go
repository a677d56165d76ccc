package commands

import (
	"context"
)

type SetCourierActivityCommandHandler struct {
	uowFactory CourierActivityUoWFactory
	policy     Policy
}

func NewSetCourierActivityCommandHandler(uowFactory CourierActivityUoWFactory, policy Policy) SetCourierActivityCommandHandler {
	return SetCourierActivityCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle is idempotent: marking an inactive courier inactive again is a no-op.
func (h SetCourierActivityCommandHandler) Handle(ctx context.Context, cmd SetCourierActivityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.requireAdmin(cmd.AdminID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierActivityRepository()
	var err error
	if cmd.Active() {
		err = repo.MarkActive(ctx, cmd.CourierID())
	} else {
		err = repo.MarkInactive(ctx, cmd.CourierID())
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
