// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ReconcileJob recounts the execution items of every non-cancelled order and repairs
// entitlement counts and statuses that drifted from them. Each repaired order raises
// the usual status-changed event.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with a leading seconds field. The default
// "0 0 * * * *" runs at the top of every hour. Overlapping runs are skipped.
package jobs
