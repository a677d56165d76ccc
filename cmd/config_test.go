package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"courierbot/cmd"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "STORAGE_DRIVER", "AMQP_EXCHANGE", "MIN_ORDER_TOTAL", "LARGE_ORDER_QUANTITY",
		"MAX_LARGE_ORDER_COUNT_DIFFERENCE", "LATE_DELIVERY_AFTER", "LOCK_TIMEOUT", "TIMEZONE", "ADMIN_IDS",
	} {
		unset(t, key)
	}
	t.Setenv("PRIMARY_ADMIN_ID", "1")

	cfg, err := cmd.LoadConfig(noEnvFile(t))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "order_events", cfg.AMQPExchange)
	assert.True(t, decimal.RequireFromString("25").Equal(cfg.MinOrderTotal))
	assert.Equal(t, 5, cfg.LargeOrderQuantity)
	assert.Equal(t, 2, cfg.DefaultBalanceLimit)
	assert.Equal(t, 45*time.Minute, cfg.LateDeliveryAfter)
	assert.Equal(t, 10*time.Second, cfg.LockTimeout)
	assert.Equal(t, "Europe/Riga", cfg.Location().String())
	assert.Empty(t, cfg.AdminIDs)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	for _, key := range []string{"PRIMARY_ADMIN_ID", "ADMIN_IDS", "MIN_ORDER_TOTAL", "STORAGE_DRIVER"} {
		unset(t, key)
	}
	t.Setenv("LARGE_ORDER_QUANTITY", "7")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"PRIMARY_ADMIN_ID=42\nADMIN_IDS=7,8\nMIN_ORDER_TOTAL=30.50\nSTORAGE_DRIVER=memory\nLARGE_ORDER_QUANTITY=9\n",
	), 0o600))

	cfg, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.PrimaryAdminID)
	assert.Equal(t, []int64{7, 8}, cfg.AdminIDs)
	assert.True(t, decimal.RequireFromString("30.5").Equal(cfg.MinOrderTotal))
	assert.Equal(t, cmd.StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 7, cfg.LargeOrderQuantity, "environment wins over the file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("primary admin is required", func(t *testing.T) {
		unset(t, "PRIMARY_ADMIN_ID")

		_, err := cmd.LoadConfig(noEnvFile(t))

		require.Error(t, err)
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("PRIMARY_ADMIN_ID", "1")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		_, err := cmd.LoadConfig(noEnvFile(t))

		require.ErrorContains(t, err, "STORAGE_DRIVER")
	})

	t.Run("negative balance limit and bad zone", func(t *testing.T) {
		t.Setenv("PRIMARY_ADMIN_ID", "1")
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("MAX_LARGE_ORDER_COUNT_DIFFERENCE", "-1")
		t.Setenv("TIMEZONE", "Mars/Olympus")

		_, err := cmd.LoadConfig(noEnvFile(t))

		require.ErrorContains(t, err, "MAX_LARGE_ORDER_COUNT_DIFFERENCE")
		require.ErrorContains(t, err, "TIMEZONE")
	})
}
