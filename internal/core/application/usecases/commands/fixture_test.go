package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/catalog"
	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	primaryAdmin int64 = 1
	otherAdmin   int64 = 2
	customerID   int64 = 555
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...order.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Types() []order.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]order.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type factory[T any] func() T

func (f factory[T]) Create() T {
	return f()
}

// fixture wires handlers over one in-memory store the way the composition
// root does.
type fixture struct {
	store     *memory.Store
	uow       *memory.UnitOfWorkFactory
	clock     *testClock
	publisher *recordingPublisher
	guard     *concurrency.Guard
	policy    commands.Policy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:     store,
		uow:       memory.NewUnitOfWorkFactory(store),
		clock:     &testClock{now: time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)},
		publisher: &recordingPublisher{},
		guard:     concurrency.NewGuard(time.Second),
		policy: commands.Policy{
			MinOrderTotal:       decimal.RequireFromString("25.00"),
			LargeOrderQuantity:  5,
			DefaultBalanceLimit: 2,
			AdminIDs:            []int64{otherAdmin},
			PrimaryAdminID:      primaryAdmin,
		},
	}
}

func (f *fixture) uowFactory() commands.UoWFactory {
	return factory[commands.UoW](func() commands.UoW { return f.uow.Create() })
}

func (f *fixture) orderUoWFactory() commands.OrderUoWFactory {
	return factory[commands.OrderUoW](func() commands.OrderUoW { return f.uow.Create() })
}

func (f *fixture) submitUoWFactory() commands.SubmitUoWFactory {
	return factory[commands.SubmitUoW](func() commands.SubmitUoW { return f.uow.Create() })
}

func (f *fixture) settingsUoWFactory() commands.SettingsUoWFactory {
	return factory[commands.SettingsUoW](func() commands.SettingsUoW { return f.uow.Create() })
}

func (f *fixture) activityUoWFactory() commands.CourierActivityUoWFactory {
	return factory[commands.CourierActivityUoW](func() commands.CourierActivityUoW { return f.uow.Create() })
}

func (f *fixture) submitHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(f.submitUoWFactory(), f.guard, f.clock, f.publisher, f.policy)
}

func (f *fixture) acceptHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(f.uowFactory(), f.guard, f.clock, f.publisher, f.policy)
}

func (f *fixture) denyHandler() commands.DenyOrderCommandHandler {
	return commands.NewDenyOrderCommandHandler(f.orderUoWFactory(), f.guard, f.clock, f.publisher, f.policy)
}

func (f *fixture) deliverHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(f.orderUoWFactory(), f.guard, f.clock, f.publisher)
}

func (f *fixture) cancelHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(f.orderUoWFactory(), f.guard, f.clock, f.publisher)
}

// submit stores a pending order of quantity units at 10.00 each.
func (f *fixture) submit(t *testing.T, quantity int) commands.SubmitOrderResult {
	t.Helper()
	cmd, err := commands.NewSubmitOrderCommand(
		order.Customer{ID: customerID, Username: "buyer"},
		[]order.Item{item(t, quantity, "10.00")},
		order.Details{TimeSlot: "19:00-20:00"},
	)
	require.NoError(t, err)

	res, err := f.submitHandler().Handle(t.Context(), cmd)
	require.NoError(t, err)
	return res
}

func (f *fixture) accept(t *testing.T, displayNo int, courierID int64) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewAcceptOrderCommand(commands.OrderRef{DisplayNo: displayNo}, rider(t, courierID))
	require.NoError(t, err)
	return f.acceptHandler().Handle(t.Context(), cmd)
}

func (f *fixture) stored(t *testing.T, res commands.SubmitOrderResult) *order.Order {
	t.Helper()
	o, err := f.uow.Create().OrderRepository().Get(t.Context(), res.Workday, res.DisplayNo)
	require.NoError(t, err)
	return o
}

func item(t *testing.T, quantity int, price string) order.Item {
	t.Helper()
	it, err := order.NewItem("Cola", quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return it
}

func rider(t *testing.T, id int64) courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, "rider", "Rider")
	require.NoError(t, err)
	return c
}

type staticCatalog struct {
	menu *catalog.Catalog
}

func (s staticCatalog) Catalog(context.Context) (*catalog.Catalog, error) {
	return s.menu, nil
}

func testCatalog(t *testing.T) staticCatalog {
	t.Helper()
	menu, err := catalog.New(
		[]catalog.Category{{ID: "soft", Names: map[string]string{"en": "Soft drinks"}}},
		[]catalog.Drink{
			{
				ID:         "cola",
				CategoryID: "soft",
				Names:      map[string]string{"en": "Cola"},
				Price:      decimal.RequireFromString("5.00"),
				Cost:       decimal.RequireFromString("2.00"),
			},
			{
				ID:         "juice",
				CategoryID: "soft",
				Names:      map[string]string{"en": "Juice"},
				Price:      decimal.RequireFromString("7.50"),
			},
		},
	)
	require.NoError(t, err)
	return staticCatalog{menu: menu}
}
