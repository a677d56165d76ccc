package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionExpirer drops carts idle for longer than the given duration.
type SessionExpirer interface {
	Expire(idle time.Duration) int
}

// SessionExpiryJob forgets abandoned carts.
type SessionExpiryJob struct {
	sessions SessionExpirer
	idle     time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionExpiryJob(sessions SessionExpirer, idle time.Duration, schedule string, logger *slog.Logger) *SessionExpiryJob {
	logger = logger.With("component", "session_expiry_job")
	return &SessionExpiryJob{
		sessions: sessions,
		idle:     idle,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *SessionExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started", "schedule", j.schedule, "idle", j.idle)
	return nil
}

func (j *SessionExpiryJob) run() {
	if n := j.sessions.Expire(j.idle); n > 0 {
		j.logger.InfoContext(context.Background(), "Idle sessions expired", "count", n)
	}
}

func (j *SessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
