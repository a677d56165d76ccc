package commands_test

import (
	"testing"
	"time"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyLateDeliveriesCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewNotifyLateDeliveriesCommandHandler(f.orderUoWFactory(), f.clock, f.publisher)
	cmd, err := commands.NewNotifyLateDeliveriesCommand(45 * time.Minute)
	require.NoError(t, err)

	late := f.submit(t, 3)
	_, err = f.accept(t, late.DisplayNo, 101)
	require.NoError(t, err)
	f.submit(t, 3)

	f.clock.Set(f.clock.Now().Add(30 * time.Minute))
	n, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Set(f.clock.Now().Add(20 * time.Minute))
	n, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "repeated until the order leaves accepted")

	_, err = f.deliver(t, late.DisplayNo, 101)
	require.NoError(t, err)
	n, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Zero(t, n)

	types := f.publisher.Types()
	assert.Equal(t, 2, countType(types, order.EventLate))
}

func countType(types []order.EventType, want order.EventType) int {
	n := 0
	for _, typ := range types {
		if typ == want {
			n++
		}
	}
	return n
}
