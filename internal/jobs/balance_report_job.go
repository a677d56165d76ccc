package jobs

import (
	"context"
	"log/slog"

	"courierbot/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BalanceReportJob logs the weekly large-order spread so that imbalances are
// visible without asking the bot.
type BalanceReportJob struct {
	handler  queries.GetBalanceInfoQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBalanceReportJob(handler queries.GetBalanceInfoQueryHandler, schedule string, logger *slog.Logger) *BalanceReportJob {
	logger = logger.With("component", "balance_report_job")
	return &BalanceReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *BalanceReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Balance report job started", "schedule", j.schedule)
	return nil
}

func (j *BalanceReportJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	info, err := j.handler.Handle(ctx, queries.NewGetBalanceInfoQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Balance report job failed", "error", err)
		return
	}

	level := slog.LevelInfo
	if !info.IsBalanced {
		level = slog.LevelWarn
	}
	j.logger.Log(ctx, level, "Large order balance",
		"week", info.Week.String(),
		"has_orders", info.HasOrders,
		"min", info.Min,
		"max", info.Max,
		"difference", info.Difference,
		"limit", info.Limit,
		"balanced", info.IsBalanced,
		"active", len(info.Active),
		"inactive", len(info.Inactive),
	)
}

func (j *BalanceReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Balance report job stopped")
}
