package commands_test

import (
	"testing"

	"courierbot/internal/adapters/out/sessionstore"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addToCart(t *testing.T, h commands.AddCartItemCommandHandler, drinkID string, qty int) (commands.CartSummary, error) {
	t.Helper()
	cmd, err := commands.NewAddCartItemCommand(order.Customer{ID: customerID, Username: "buyer"}, drinkID, qty)
	require.NoError(t, err)
	return h.Handle(t.Context(), cmd)
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	sessions := sessionstore.New()
	add := commands.NewAddCartItemCommandHandler(sessions, testCatalog(t), f.guard)
	checkout := commands.NewCheckoutCommandHandler(sessions, f.guard, f.submitHandler())

	checkoutCmd, err := commands.NewCheckoutCommand(customerID, order.Details{Region: "Centre", Payment: "cash"})
	require.NoError(t, err)

	t.Run("unknown drink", func(t *testing.T) {
		_, err := addToCart(t, add, "water", 1)

		require.ErrorIs(t, err, commands.ErrDrinkNotFound)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Zero(t, sessions.Len())
	})

	t.Run("checkout of missing cart", func(t *testing.T) {
		_, err := checkout.Handle(t.Context(), checkoutCmd)

		require.ErrorIs(t, err, commands.ErrEmptyCart)
	})

	t.Run("below minimum keeps the cart", func(t *testing.T) {
		summary, err := addToCart(t, add, "cola", 2)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("10.00").Equal(summary.Total))

		_, err = checkout.Handle(t.Context(), checkoutCmd)

		require.ErrorIs(t, err, commands.ErrBelowMinimumOrder)
		assert.Equal(t, 1, sessions.Len())
	})

	t.Run("same drink merges", func(t *testing.T) {
		summary, err := addToCart(t, add, "cola", 1)
		require.NoError(t, err)
		summary, err = addToCart(t, add, "juice", 2)
		require.NoError(t, err)

		require.Len(t, summary.Lines, 2)
		assert.Equal(t, 3, summary.Lines[0].Quantity)
		assert.True(t, decimal.RequireFromString("30.00").Equal(summary.Total))
	})

	t.Run("checkout submits and clears", func(t *testing.T) {
		res, err := checkout.Handle(t.Context(), checkoutCmd)

		require.NoError(t, err)
		assert.Equal(t, 1, res.DisplayNo)
		assert.Equal(t, 5, res.Order.Quantity())
		assert.Equal(t, "Centre", res.Order.Details().Region)
		assert.Zero(t, sessions.Len())

		_, err = checkout.Handle(t.Context(), checkoutCmd)
		require.ErrorIs(t, err, commands.ErrEmptyCart)
	})
}

func TestClearCartCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	sessions := sessionstore.New()
	add := commands.NewAddCartItemCommandHandler(sessions, testCatalog(t), f.guard)
	_, err := addToCart(t, add, "cola", 1)
	require.NoError(t, err)

	cmd, err := commands.NewClearCartCommand(customerID)
	require.NoError(t, err)
	require.NoError(t, commands.NewClearCartCommandHandler(sessions, f.guard).Handle(t.Context(), cmd))

	assert.Zero(t, sessions.Len())
	assert.Zero(t, f.guard.Held())
}
