// Package jobs provides scheduled background tasks for the courier bot.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. LateDeliveryJob - reports accepted orders not delivered in time (order.late events)
//  2. BalanceReportJob - logs the weekly large-order spread between couriers
//  3. SessionExpiryJob - drops carts nobody touched for a while
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager().
//		Add("late delivery", jobs.NewLateDeliveryJob(handler, 45*time.Minute, "@every 1m", logger)).
//		Add("balance report", jobs.NewBalanceReportJob(balanceHandler, "@hourly", logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the standard five-field cron syntax or descriptors such as
// "@every 1m" and "@hourly". A run that is still going when the next one is
// due causes that tick to be skipped.
//
// # Error Handling
//
// Run failures are logged and the job keeps its schedule. A job that fails
// to start stops every job started before it.
package jobs
