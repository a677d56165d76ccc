package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort      string `envconfig:"HTTP_PORT" default:"8080"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"order_events"`

	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/drinks.json"`
	Timezone    string `envconfig:"TIMEZONE" default:"Europe/Riga"`

	AdminIDs       []int64 `envconfig:"ADMIN_IDS"`
	PrimaryAdminID int64   `envconfig:"PRIMARY_ADMIN_ID" required:"true"`

	MinOrderTotal       decimal.Decimal `envconfig:"MIN_ORDER_TOTAL" default:"25.00"`
	LargeOrderQuantity  int             `envconfig:"LARGE_ORDER_QUANTITY" default:"5"`
	DefaultBalanceLimit int             `envconfig:"MAX_LARGE_ORDER_COUNT_DIFFERENCE" default:"2"`

	LockTimeout   time.Duration `envconfig:"LOCK_TIMEOUT" default:"10s"`
	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`

	LateDeliveryAfter     time.Duration `envconfig:"LATE_DELIVERY_AFTER" default:"45m"`
	LateDeliverySchedule  string        `envconfig:"LATE_DELIVERY_SCHEDULE" default:"@every 1m"`
	BalanceReportSchedule string        `envconfig:"BALANCE_REPORT_SCHEDULE" default:"@hourly"`
	SessionIdleTimeout    time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"2h"`
	SessionExpirySchedule string        `envconfig:"SESSION_EXPIRY_SCHEDULE" default:"@every 10m"`
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.StorageDriver != StorageDriverPostgres && c.StorageDriver != StorageDriverMemory {
		errList = append(errList, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.StorageDriver))
	}
	if c.PrimaryAdminID <= 0 {
		errList = append(errList, errors.New("PRIMARY_ADMIN_ID must be a positive chat id"))
	}
	if c.MinOrderTotal.IsNegative() {
		errList = append(errList, errors.New("MIN_ORDER_TOTAL must not be negative"))
	}
	if c.LargeOrderQuantity <= 0 {
		errList = append(errList, errors.New("LARGE_ORDER_QUANTITY must be positive"))
	}
	if c.DefaultBalanceLimit < 0 {
		errList = append(errList, errors.New("MAX_LARGE_ORDER_COUNT_DIFFERENCE must not be negative"))
	}
	if c.LockTimeout <= 0 || c.NotifyTimeout <= 0 {
		errList = append(errList, errors.New("LOCK_TIMEOUT and NOTIFY_TIMEOUT must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errList = append(errList, fmt.Errorf("TIMEZONE: %w", err))
	}
	return errors.Join(errList...)
}

// Location returns the business time zone. Validate has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
