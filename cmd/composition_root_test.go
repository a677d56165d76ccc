package cmd_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courierbot/cmd"
	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) cmd.Config {
	t.Helper()
	return cmd.Config{
		StorageDriver:         cmd.StorageDriverMemory,
		CatalogPath:           t.TempDir() + "/drinks.json",
		Timezone:              "UTC",
		PrimaryAdminID:        1,
		MinOrderTotal:         decimal.RequireFromString("25.00"),
		LargeOrderQuantity:    5,
		DefaultBalanceLimit:   2,
		LockTimeout:           time.Second,
		NotifyTimeout:         time.Second,
		LateDeliveryAfter:     45 * time.Minute,
		LateDeliverySchedule:  "@every 1m",
		BalanceReportSchedule: "@hourly",
		SessionIdleTimeout:    time.Hour,
		SessionExpirySchedule: "@every 10m",
	}
}

func TestCompositionRoot_ServesOrders(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(t)
	app := cmd.NewCompositionRoot(
		cfg,
		memory.NewUnitOfWorkFactory(memory.NewStore()),
		notify.NewLogPublisher(logger),
		cmd.NewZoneClock(cfg.Location()),
		logger,
	)
	e := httpin.NewEcho(app.CreateHTTPServer())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(
		`{"customer_id": 500, "items": [{"name": "Cola", "quantity": 3, "unit_price": "10.00"}]}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/open", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions/500/cart/items",
		strings.NewReader(`{"drink_id": "cola", "quantity": 1}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "empty menu without a drinks file")
}

func TestCompositionRoot_JobManager(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(t)
	app := cmd.NewCompositionRoot(
		cfg,
		memory.NewUnitOfWorkFactory(memory.NewStore()),
		notify.NewLogPublisher(logger),
		cmd.NewZoneClock(cfg.Location()),
		logger,
	)

	jm := app.CreateJobManager()
	require.NoError(t, jm.StartAll())
	jm.StopAll()

	cfg.LateDeliverySchedule = "sometimes"
	broken := cmd.NewCompositionRoot(cfg, memory.NewUnitOfWorkFactory(memory.NewStore()),
		notify.NewLogPublisher(logger), cmd.NewZoneClock(cfg.Location()), logger)
	require.Error(t, broken.CreateJobManager().StartAll())
}
