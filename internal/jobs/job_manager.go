package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single scheduled run.
const runTimeout = 30 * time.Second

// Job is a scheduled task owned by the manager.
type Job interface {
	Start() error
	Stop()
}

// newCron returns a scheduler that skips a run while the previous one is
// still going and survives panics in a run.
func newCron(logger *slog.Logger) *cron.Cron {
	return cron.New(cron.WithChain(wrappers(logger)...))
}

func wrappers(logger *slog.Logger) []cron.JobWrapper {
	l := cronLogger{logger: logger}
	return []cron.JobWrapper{
		cron.Recover(l),
		cron.SkipIfStillRunning(l),
	}
}

// cronLogger routes scheduler messages into slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers a job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) *JobManager {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully, waiting for running ones.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
