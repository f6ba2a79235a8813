package worker

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"

	"github.com/electrium-mobility/rolesync/pkg/usecase"
	"github.com/electrium-mobility/rolesync/pkg/utils/errutil"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

// DefaultSchedule runs the full sync once a day.
const DefaultSchedule = "@daily"

// Worker triggers periodic full syncs on a cron schedule.
type Worker struct {
	uc       *usecase.UseCases
	cron     *cron.Cron
	schedule string
	dryRun   bool
}

type Option func(*Worker)

// WithSchedule overrides the cron expression. Empty keeps the default.
func WithSchedule(schedule string) Option {
	return func(w *Worker) {
		if schedule != "" {
			w.schedule = schedule
		}
	}
}

// WithDryRun makes scheduled runs report without mutating the directory.
func WithDryRun(dryRun bool) Option {
	return func(w *Worker) {
		w.dryRun = dryRun
	}
}

func New(uc *usecase.UseCases, opts ...Option) *Worker {
	w := &Worker{
		uc:       uc,
		schedule: DefaultSchedule,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start registers the sync job and starts the scheduler. The job runs
// with a background context carrying the caller's logger.
func (w *Worker) Start(ctx context.Context) error {
	logger := logging.From(ctx)
	w.cron = cron.New()

	_, err := w.cron.AddFunc(w.schedule, func() {
		jobCtx := logging.With(context.Background(), logger)
		logger.Info("starting scheduled role sync", "schedule", w.schedule, "dry_run", w.dryRun)

		if err := w.uc.ReloadMappings(jobCtx); err != nil {
			_ = errutil.Handle(jobCtx, err, "failed to reload mappings before scheduled sync")
		}
		if err := w.uc.RunFullSyncAndReport(jobCtx, w.dryRun); err != nil {
			_ = errutil.Handle(jobCtx, err, "scheduled role sync failed")
			return
		}
		logger.Info("scheduled role sync finished")
	})
	if err != nil {
		return goerr.Wrap(err, "failed to schedule sync job",
			goerr.V("schedule", w.schedule))
	}

	w.cron.Start()
	logger.Info("sync scheduler started", "schedule", w.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *Worker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}
