package commands_test

import (
	"testing"
	"time"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitOrderCommand(t *testing.T) {
	_, err := commands.NewSubmitOrderCommand(order.Customer{}, nil, order.Details{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, commands.ErrEmptyCart)
}

func TestNewAcceptOrderCommand(t *testing.T) {
	cmd, err := commands.NewAcceptOrderCommand(commands.OrderRef{DisplayNo: 3}, rider(t, 7))
	require.NoError(t, err)
	assert.Equal(t, "#3", cmd.Ref().String())
	assert.Equal(t, int64(7), cmd.Courier().ID())

	_, err = commands.NewAcceptOrderCommand(commands.OrderRef{}, courier.Courier{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)
}

func TestNewTransitionCommands_RequireActor(t *testing.T) {
	ref := commands.OrderRef{DisplayNo: 1}

	_, err := commands.NewDenyOrderCommand(ref, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = commands.NewDeliverOrderCommand(ref, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = commands.NewCancelOrderCommand(ref, -1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewSetBalanceLimitCommand(t *testing.T) {
	cmd, err := commands.NewSetBalanceLimitCommand(primaryAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, cmd.Limit())

	_, err = commands.NewSetBalanceLimitCommand(primaryAdmin, -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewNotifyLateDeliveriesCommand(t *testing.T) {
	_, err := commands.NewNotifyLateDeliveriesCommand(0)
	require.Error(t, err)

	cmd, err := commands.NewNotifyLateDeliveriesCommand(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cmd.Threshold())
}

func TestNewAddCartItemCommand(t *testing.T) {
	_, err := commands.NewAddCartItemCommand(order.Customer{ID: 1}, " ", 0)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestPolicy_IsAdmin(t *testing.T) {
	p := commands.Policy{AdminIDs: []int64{2, 3}, PrimaryAdminID: 1}

	assert.True(t, p.IsAdmin(1))
	assert.True(t, p.IsAdmin(3))
	assert.False(t, p.IsAdmin(4))
	assert.False(t, commands.Policy{}.IsAdmin(0))
}
