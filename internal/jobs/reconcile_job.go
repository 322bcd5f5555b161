package jobs

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs reconciliation at the top of every hour.
const DefaultReconcileSchedule = "0 0 * * * *"

// OrderReconciler is the use case the job drives.
type OrderReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileOrdersCommand) (int, error)
}

// ReconcileJob periodically re-derives entitlement counts and order statuses
// from the recorded execution items.
type ReconcileJob struct {
	handler  OrderReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	// a run still in progress skips the next tick
	running sync.Mutex
}

// NewReconcileJob creates the job. An empty schedule falls back to DefaultReconcileSchedule.
// Schedules use the six-field cron format with seconds.
func NewReconcileJob(handler OrderReconciler, schedule string, logger *slog.Logger) *ReconcileJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &ReconcileJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reconcile_job"),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *ReconcileJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconcile job started", "schedule", j.schedule)
	return nil
}

// Run performs one reconciliation pass.
func (j *ReconcileJob) Run() {
	if !j.running.TryLock() {
		j.logger.WarnContext(context.Background(), "Reconcile job still running, skipping tick")
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()
	repaired, err := j.handler.Handle(ctx, commands.NewReconcileOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconcile job failed", "error", err)
		return
	}
	if repaired > 0 {
		j.logger.InfoContext(ctx, "Reconciled orders", "repaired", repaired)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *ReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconcile job stopped")
}
