package commands

import (
	"context"
)

// SetBalanceLimitCommandHandler stores a new balance limit. It does not need
// the dispatch lock: an acceptance in flight uses whichever value it read.
type SetBalanceLimitCommandHandler struct {
	uowFactory SettingsUoWFactory
	policy     Policy
}

func NewSetBalanceLimitCommandHandler(uowFactory SettingsUoWFactory, policy Policy) SetBalanceLimitCommandHandler {
	return SetBalanceLimitCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h SetBalanceLimitCommandHandler) Handle(ctx context.Context, cmd SetBalanceLimitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.requireAdmin(cmd.AdminID()); err != nil {
		return err
	}

	return withSettings(ctx, h.uowFactory, func(uow SettingsUoW) error {
		return uow.SettingsRepository().SetBalanceLimit(ctx, cmd.Limit())
	})
}

type SetOrderIntakeCommandHandler struct {
	uowFactory SettingsUoWFactory
	policy     Policy
}

func NewSetOrderIntakeCommandHandler(uowFactory SettingsUoWFactory, policy Policy) SetOrderIntakeCommandHandler {
	return SetOrderIntakeCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h SetOrderIntakeCommandHandler) Handle(ctx context.Context, cmd SetOrderIntakeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.requireAdmin(cmd.AdminID()); err != nil {
		return err
	}

	return withSettings(ctx, h.uowFactory, func(uow SettingsUoW) error {
		return uow.SettingsRepository().SetIntakeOpen(ctx, cmd.Open())
	})
}

func withSettings(ctx context.Context, factory SettingsUoWFactory, fn func(SettingsUoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
