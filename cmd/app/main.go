package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courierbot/cmd"
	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/notify"
	"courierbot/internal/adapters/out/postgres"
	"courierbot/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uowFactory, closeStorage := openStorage(configs, logger)
	defer closeStorage()

	publisher, closeBroker := openPublisher(configs, logger)
	defer closeBroker()

	notifier := notify.NewBestEffort(publisher, configs.NotifyTimeout, logger)
	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	notifierDone := make(chan struct{})
	go func() {
		defer close(notifierDone)
		_ = notifier.Run(notifierCtx)
	}()

	app := cmd.NewCompositionRoot(configs, uowFactory, notifier, cmd.NewZoneClock(configs.Location()), logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	err = startWebServer(ctx, httpin.NewEcho(app.CreateHTTPServer()), configs.HTTPPort, logger)

	jobManager.StopAll()
	stopNotifier()
	<-notifierDone

	if err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func openStorage(configs cmd.Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func()) {
	if configs.StorageDriver == cmd.StorageDriverMemory {
		logger.Warn("Using in-memory storage, orders are lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore()), func() {}
	}

	dsn := postgres.DSN(configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)
	db, err := postgres.Open(dsn, logger.With("component", "gorm"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	return postgres.NewGormUnitOfWorkFactory(db), func() { _ = sqlDB.Close() }
}

func openPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if configs.AMQPURL == "" {
		logger.Info("AMQP_URL is not set, order events go to the log")
		return notify.NewLogPublisher(logger), func() {}
	}

	conn, err := notify.Dial(configs.AMQPURL)
	if err != nil {
		log.Fatalf("Failed to connect to message broker: %v", err)
	}
	publisher, err := notify.NewAMQPPublisher(conn.Channel(), configs.AMQPExchange)
	if err != nil {
		conn.Close()
		log.Fatalf("Failed to set up order events exchange: %v", err)
	}
	return publisher.WithReopen(conn.Reopen), conn.Close
}

// startWebServer serves until ctx is cancelled, then shuts down gracefully.
func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
