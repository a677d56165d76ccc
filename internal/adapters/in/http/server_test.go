package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/adapters/out/catalogfile"
	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/notify"
	"courierbot/internal/adapters/out/sessionstore"
	"courierbot/internal/core/application/concurrency"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primaryAdmin = int64(1)
	customer     = int64(500)
	riderA       = int64(101)
	riderB       = int64(102)
)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
}

type factory[T any] func() T

func (f factory[T]) Create() T {
	return f()
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	menu := filepath.Join(t.TempDir(), "drinks.json")
	require.NoError(t, os.WriteFile(menu, []byte(`{
		"soft": {"name": {"en": "Soft drinks"},
		         "items": {"cola": {"en": "Cola", "price": 5}, "juice": {"en": "Juice", "price": "7.50"}}}
	}`), 0o600))

	uow := memory.NewUnitOfWorkFactory(memory.NewStore())
	guard := concurrency.NewGuard(time.Second)
	clock := fixedClock{}
	publisher := notify.NewLogPublisher(logger)
	sessions := sessionstore.New()
	catalog := catalogfile.NewLoader(menu, logger)
	policy := commands.Policy{
		MinOrderTotal:       decimal.RequireFromString("25.00"),
		LargeOrderQuantity:  5,
		DefaultBalanceLimit: 2,
		PrimaryAdminID:      primaryAdmin,
	}

	fullUoW := factory[commands.UoW](func() commands.UoW { return uow.Create() })
	orderUoW := factory[commands.OrderUoW](func() commands.OrderUoW { return uow.Create() })
	submitUoW := factory[commands.SubmitUoW](func() commands.SubmitUoW { return uow.Create() })
	settingsUoW := factory[commands.SettingsUoW](func() commands.SettingsUoW { return uow.Create() })
	activityUoW := factory[commands.CourierActivityUoW](func() commands.CourierActivityUoW { return uow.Create() })
	orderReaders := factory[queries.OrderReader](func() queries.OrderReader { return uow.Create() })
	dispatchReaders := factory[queries.DispatchReader](func() queries.DispatchReader { return uow.Create() })

	submit := commands.NewSubmitOrderCommandHandler(submitUoW, guard, clock, publisher, policy)
	server := httpin.NewServer(httpin.Handlers{
		SubmitOrder:        submit,
		AcceptOrder:        commands.NewAcceptOrderCommandHandler(fullUoW, guard, clock, publisher, policy),
		DenyOrder:          commands.NewDenyOrderCommandHandler(orderUoW, guard, clock, publisher, policy),
		DeliverOrder:       commands.NewDeliverOrderCommandHandler(orderUoW, guard, clock, publisher),
		CancelOrder:        commands.NewCancelOrderCommandHandler(orderUoW, guard, clock, publisher),
		SetBalanceLimit:    commands.NewSetBalanceLimitCommandHandler(settingsUoW, policy),
		SetOrderIntake:     commands.NewSetOrderIntakeCommandHandler(settingsUoW, policy),
		SetCourierActivity: commands.NewSetCourierActivityCommandHandler(activityUoW, policy),
		AddCartItem:        commands.NewAddCartItemCommandHandler(sessions, catalog, guard),
		ClearCart:          commands.NewClearCartCommandHandler(sessions, guard),
		Checkout:           commands.NewCheckoutCommandHandler(sessions, guard, submit),

		GetOrder:             queries.NewGetOrderQueryHandler(orderReaders, clock),
		ListOpenOrders:       queries.NewListOpenOrdersQueryHandler(orderReaders, clock),
		FindOrders:           queries.NewFindOrdersByDeliveryNoQueryHandler(orderReaders),
		GetBalanceInfo:       queries.NewGetBalanceInfoQueryHandler(dispatchReaders, clock, policy.DefaultBalanceLimit, primaryAdmin),
		ListInactiveCouriers: queries.NewListInactiveCouriersQueryHandler(dispatchReaders),
	}, logger)

	return httpin.NewEcho(server)
}

func call(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequestWithContext(context.Background(), method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func submitOrder(t *testing.T, e *echo.Echo, quantity int) httpin.SubmitOrderResponse {
	t.Helper()
	body := `{"customer_id": 500, "customer_username": "buyer",
		"items": [{"name": "Cola", "quantity": ` + itoa(quantity) + `, "unit_price": "10.00"}],
		"details": {"time_slot": "19:00-20:00", "region": "Centre"}}`
	rec := call(t, e, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpin.SubmitOrderResponse](t, rec)
}

func transition(t *testing.T, e *echo.Echo, displayNo int, action string, actor int64) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"actor_id": ` + itoa(int(actor)) + `, "username": "rider", "full_name": "Rider"}`
	return call(t, e, http.MethodPost, "/api/v1/orders/"+itoa(displayNo)+"/"+action, body)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[httpin.Error](t, rec).Code
}

func TestHealth(t *testing.T) {
	rec := call(t, newTestServer(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestOrderLifecycle(t *testing.T) {
	e := newTestServer(t)

	created := submitOrder(t, e, 3)
	assert.Equal(t, 1, created.DisplayNo)
	assert.Equal(t, "2026-10-18", created.Workday)
	assert.Len(t, created.DeliveryNo, 5)

	rec := call(t, e, http.MethodGet, "/api/v1/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[httpin.OrderDTO](t, rec)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "Centre", got.Details.Region)
	// priced as submitted, not from the menu
	assert.True(t, decimal.RequireFromString("30").Equal(got.TotalPrice))

	rec = call(t, e, http.MethodGet, "/api/v1/orders?delivery_no="+created.DeliveryNo, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]httpin.OrderDTO](t, rec), 1)

	rec = transition(t, e, 1, "accept", riderA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"accepted"`)

	rec = transition(t, e, 1, "accept", riderB)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httpin.CodeAlreadyProcessed, errorCode(t, rec))

	rec = transition(t, e, 1, "deliver", riderB)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, httpin.CodeNotOrderCourier, errorCode(t, rec))

	rec = call(t, e, http.MethodGet, "/api/v1/orders/open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]httpin.OrderDTO](t, rec), 1)

	rec = transition(t, e, 1, "deliver", riderA)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"delivered"`)

	rec = call(t, e, http.MethodGet, "/api/v1/orders/open", "")
	assert.Empty(t, decode[[]httpin.OrderDTO](t, rec))
}

func TestOrderErrors(t *testing.T) {
	e := newTestServer(t)
	submitOrder(t, e, 3)

	tests := []struct {
		name   string
		rec    func() *httptest.ResponseRecorder
		status int
		code   string
	}{
		{
			name:   "unknown order",
			rec:    func() *httptest.ResponseRecorder { return call(t, e, http.MethodGet, "/api/v1/orders/99", "") },
			status: http.StatusNotFound,
			code:   httpin.CodeNotFound,
		},
		{
			name:   "bad display number",
			rec:    func() *httptest.ResponseRecorder { return transition(t, e, 0, "accept", riderA) },
			status: http.StatusBadRequest,
			code:   httpin.CodeInvalidRequest,
		},
		{
			name: "bad workday",
			rec: func() *httptest.ResponseRecorder {
				return call(t, e, http.MethodGet, "/api/v1/orders/1?workday=yesterday", "")
			},
			status: http.StatusBadRequest,
			code:   httpin.CodeInvalidRequest,
		},
		{
			name:   "deny by non-admin",
			rec:    func() *httptest.ResponseRecorder { return transition(t, e, 1, "deny", riderA) },
			status: http.StatusForbidden,
			code:   httpin.CodeForbidden,
		},
		{
			name: "below minimum",
			rec: func() *httptest.ResponseRecorder {
				return call(t, e, http.MethodPost, "/api/v1/orders",
					`{"customer_id": 500, "items": [{"name": "Cola", "quantity": 1, "unit_price": "10.00"}]}`)
			},
			status: http.StatusBadRequest,
			code:   httpin.CodeBelowMinimum,
		},
		{
			name: "no items",
			rec: func() *httptest.ResponseRecorder {
				return call(t, e, http.MethodPost, "/api/v1/orders", `{"customer_id": 500, "items": []}`)
			},
			status: http.StatusBadRequest,
			code:   httpin.CodeEmptyCart,
		},
		{
			name:   "bad delivery number",
			rec:    func() *httptest.ResponseRecorder { return call(t, e, http.MethodGet, "/api/v1/orders?delivery_no=12", "") },
			status: http.StatusBadRequest,
			code:   httpin.CodeInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec()

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	t.Run("bad transition requests answer once", func(t *testing.T) {
		for _, tc := range []struct{ path, body string }{
			{"/api/v1/orders/1/accept", `{"actor_id": 101, "workday": "bogus"}`},
			{"/api/v1/orders/1/deliver", `{"actor_id": "x"}`},
			{"/api/v1/orders/1/cancel", `{"actor_id": 101`},
			{"/api/v1/orders/1/deny", `{"actor_id": 1, "workday": "2026-13-40"}`},
		} {
			rec := call(t, e, http.MethodPost, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, tc.path)
			dec := json.NewDecoder(rec.Body)
			var got httpin.Error
			require.NoError(t, dec.Decode(&got), tc.path)
			assert.Equal(t, httpin.CodeInvalidRequest, got.Code, tc.path)
			assert.ErrorIs(t, dec.Decode(&got), io.EOF, tc.path)
		}
	})

	t.Run("admin denies", func(t *testing.T) {
		rec := transition(t, e, 1, "deny", primaryAdmin)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"denied"`)
	})
}

func TestOrderIntake(t *testing.T) {
	e := newTestServer(t)

	rec := call(t, e, http.MethodPut, "/api/v1/intake", `{"admin_id": 500, "open": false}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, e, http.MethodPut, "/api/v1/intake", `{"admin_id": 1, "open": false}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, e, http.MethodPost, "/api/v1/orders",
		`{"customer_id": 500, "items": [{"name": "Cola", "quantity": 3, "unit_price": "10.00"}]}`)
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, httpin.CodeIntakeClosed, errorCode(t, rec))

	rec = call(t, e, http.MethodPut, "/api/v1/intake", `{"admin_id": 1, "open": true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	submitOrder(t, e, 3)
}

func TestDispatchBalance(t *testing.T) {
	e := newTestServer(t)

	rec := call(t, e, http.MethodPut, "/api/v1/dispatch/balance-limit", `{"admin_id": 1, "limit": 0}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	submitOrder(t, e, 5)
	submitOrder(t, e, 5)
	submitOrder(t, e, 5)

	require.Equal(t, http.StatusOK, transition(t, e, 1, "accept", riderA).Code)
	require.Equal(t, http.StatusOK, transition(t, e, 2, "accept", riderB).Code)

	rec = transition(t, e, 3, "accept", riderA)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httpin.CodeBalanceRejected, errorCode(t, rec))

	rec = call(t, e, http.MethodGet, "/api/v1/dispatch/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[httpin.BalanceInfoDTO](t, rec)
	assert.True(t, info.HasOrders)
	assert.Equal(t, 0, info.Limit)
	assert.Equal(t, 0, info.Difference)
	assert.Equal(t, map[int64]int{riderA: 1, riderB: 1}, info.Active)

	t.Run("inactive courier leaves the balance", func(t *testing.T) {
		rec := call(t, e, http.MethodPut, "/api/v1/couriers/102/activity", `{"admin_id": 1, "active": false}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = call(t, e, http.MethodGet, "/api/v1/couriers/inactive", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int64{riderB}, decode[[]int64](t, rec))

		assert.Equal(t, http.StatusOK, transition(t, e, 3, "accept", riderA).Code)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		rec := call(t, e, http.MethodPut, "/api/v1/dispatch/balance-limit", `{"admin_id": 1, "limit": -1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartCheckout(t *testing.T) {
	e := newTestServer(t)

	rec := call(t, e, http.MethodPost, "/api/v1/sessions/500/checkout", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpin.CodeEmptyCart, errorCode(t, rec))

	rec = call(t, e, http.MethodPost, "/api/v1/sessions/500/cart/items", `{"drink_id": "beer", "quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, e, http.MethodPost, "/api/v1/sessions/500/cart/items", `{"username": "buyer", "drink_id": "cola", "quantity": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = call(t, e, http.MethodPost, "/api/v1/sessions/500/cart/items", `{"drink_id": "juice", "quantity": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[httpin.CartDTO](t, rec)
	require.Len(t, cart.Lines, 2)
	assert.True(t, decimal.RequireFromString("30").Equal(cart.Total))

	rec = call(t, e, http.MethodPost, "/api/v1/sessions/500/checkout", `{"details": {"location": "Gate 4", "payment": "cash"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[httpin.SubmitOrderResponse](t, rec).DisplayNo)

	rec = call(t, e, http.MethodGet, "/api/v1/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[httpin.OrderDTO](t, rec)
	assert.Equal(t, "Gate 4", got.Details.Location)
	assert.Equal(t, customer, got.CustomerID)

	rec = call(t, e, http.MethodPost, "/api/v1/sessions/500/checkout", `{}`)
	assert.Equal(t, httpin.CodeEmptyCart, errorCode(t, rec))

	t.Run("clear session", func(t *testing.T) {
		rec := call(t, e, http.MethodPost, "/api/v1/sessions/500/cart/items", `{"drink_id": "cola", "quantity": 1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, http.StatusNoContent, call(t, e, http.MethodDelete, "/api/v1/sessions/500", "").Code)
		assert.Equal(t, http.StatusBadRequest, call(t, e, http.MethodDelete, "/api/v1/sessions/abc", "").Code)
	})
}
