package commands

import (
	"context"

	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/domain/model/cart"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
)

// AddCartItemCommandHandler mutates a session under the customer's user lock.
type AddCartItemCommandHandler struct {
	sessions ports.SessionStore
	catalog  ports.CatalogProvider
	guard    *concurrency.Guard
}

func NewAddCartItemCommandHandler(
	sessions ports.SessionStore,
	catalog ports.CatalogProvider,
	guard *concurrency.Guard,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{sessions: sessions, catalog: catalog, guard: guard}
}

func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (CartSummary, error) {
	if err := cmd.Validate(); err != nil {
		return CartSummary{}, err
	}

	menu, err := h.catalog.Catalog(ctx)
	if err != nil {
		return CartSummary{}, err
	}
	drink, ok := menu.Find(cmd.DrinkID())
	if !ok {
		return CartSummary{}, errs.NewObjectNotFoundErrorWithCause("drink", cmd.DrinkID(), ErrDrinkNotFound)
	}

	var summary CartSummary
	err = h.guard.WithUserLock(ctx, cmd.Customer().ID, func(context.Context) error {
		c, found := h.sessions.Get(cmd.Customer().ID)
		if !found {
			c = cart.New(cmd.Customer())
		}
		if addErr := c.Add(drink, cmd.Quantity()); addErr != nil {
			return addErr
		}
		h.sessions.Put(c)
		summary = summarize(c)
		return nil
	})
	return summary, err
}

type ClearCartCommandHandler struct {
	sessions ports.SessionStore
	guard    *concurrency.Guard
}

func NewClearCartCommandHandler(sessions ports.SessionStore, guard *concurrency.Guard) ClearCartCommandHandler {
	return ClearCartCommandHandler{sessions: sessions, guard: guard}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.guard.WithUserLock(ctx, cmd.UserID(), func(context.Context) error {
		h.sessions.Delete(cmd.UserID())
		return nil
	})
}

// CheckoutCommandHandler submits the cart while holding the user lock, so a
// double-pressed checkout button cannot create two orders from one cart.
// The session is removed only when the order was stored.
type CheckoutCommandHandler struct {
	sessions ports.SessionStore
	guard    *concurrency.Guard
	submit   SubmitOrderCommandHandler
}

func NewCheckoutCommandHandler(
	sessions ports.SessionStore,
	guard *concurrency.Guard,
	submit SubmitOrderCommandHandler,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{sessions: sessions, guard: guard, submit: submit}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	var result SubmitOrderResult
	err := h.guard.WithUserLock(ctx, cmd.UserID(), func(ctx context.Context) error {
		c, found := h.sessions.Get(cmd.UserID())
		if !found || c.IsEmpty() {
			return ErrEmptyCart
		}
		c.SetDetails(cmd.Details())

		items, err := c.OrderItems()
		if err != nil {
			return err
		}

		submitCmd, err := NewSubmitOrderCommand(c.Customer(), items, c.Details())
		if err != nil {
			return err
		}

		if result, err = h.submit.Handle(ctx, submitCmd); err != nil {
			return err
		}

		h.sessions.Delete(cmd.UserID())
		return nil
	})
	return result, err
}
