package jobs

import (
	"context"
	"log/slog"
	"time"

	"courierbot/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LateDeliveryJob periodically reminds about accepted orders that are not
// delivered within the threshold.
type LateDeliveryJob struct {
	handler   commands.NotifyLateDeliveriesCommandHandler
	threshold time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewLateDeliveryJob(
	handler commands.NotifyLateDeliveriesCommandHandler,
	threshold time.Duration,
	schedule string,
	logger *slog.Logger,
) *LateDeliveryJob {
	logger = logger.With("component", "late_delivery_job")
	return &LateDeliveryJob{
		handler:   handler,
		threshold: threshold,
		schedule:  schedule,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *LateDeliveryJob) Start() error {
	cmd, err := commands.NewNotifyLateDeliveriesCommand(j.threshold)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Late delivery job started",
		"schedule", j.schedule, "threshold", j.threshold)
	return nil
}

func (j *LateDeliveryJob) run(cmd commands.NotifyLateDeliveriesCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	late, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Late delivery job failed", "error", err)
		return
	}
	if late > 0 {
		j.logger.InfoContext(ctx, "Late deliveries reported", "count", late)
	}
}

func (j *LateDeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Late delivery job stopped")
}
