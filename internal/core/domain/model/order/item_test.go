package order_test

import (
	"testing"

	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("computes line total", func(t *testing.T) {
		it, err := order.NewItem(" Cola 0.5l ", 3, decimal.RequireFromString("2.35"))

		require.NoError(t, err)
		assert.Equal(t, "Cola 0.5l", it.Name())
		assert.Equal(t, 3, it.Quantity())
		assert.True(t, decimal.RequireFromString("7.05").Equal(it.LineTotal()))
	})

	t.Run("free item is allowed", func(t *testing.T) {
		_, err := order.NewItem("Ice", 1, decimal.Zero)

		require.NoError(t, err)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := order.NewItem("", 1, decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewItem("Cola", 0, decimal.NewFromInt(1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewItem("Cola", 1, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSumItems(t *testing.T) {
	a, _ := order.NewItem("A", 2, decimal.RequireFromString("10.50"))
	b, _ := order.NewItem("B", 3, decimal.RequireFromString("1.00"))

	total, qty := order.SumItems([]order.Item{a, b})

	assert.True(t, decimal.RequireFromString("24.00").Equal(total))
	assert.Equal(t, 5, qty)
}

func TestDeliveryNo(t *testing.T) {
	for range 200 {
		no := order.NewDeliveryNo()
		require.NoError(t, order.ValidateDeliveryNo(no), no)
	}

	require.Error(t, order.ValidateDeliveryNo("1234"))
	require.Error(t, order.ValidateDeliveryNo("12a45"))
	require.NoError(t, order.ValidateDeliveryNo("00042"))
}
