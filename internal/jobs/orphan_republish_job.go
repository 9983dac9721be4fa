package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"ordermgmt/internal/core/application/usecases/commands"
)

// OrphanRepublishJob periodically republishes fulfillment envelopes for
// orders stuck in Submitted status. It covers the window where the API
// process persisted an order but died before the publish went out.
type OrphanRepublishJob struct {
	handler  commands.RepublishOrphansCommandHandler
	schedule string
	minAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrphanRepublishJob creates the reconciliation job.
// The schedule is a standard five-field cron expression; minAge keeps the
// sweep away from orders whose first publish is still in flight.
func NewOrphanRepublishJob(
	handler commands.RepublishOrphansCommandHandler,
	schedule string,
	minAge time.Duration,
	logger *slog.Logger,
) *OrphanRepublishJob {
	return &OrphanRepublishJob{
		handler:  handler,
		schedule: schedule,
		minAge:   minAge,
		cron:     cron.New(),
		logger:   logger.With("component", "orphan_republish_job"),
	}
}

// Start schedules the reconciliation sweep.
func (j *OrphanRepublishJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRepublishOrphansCommand(j.minAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Orphan republish job misconfigured", "error", cmdErr)
			return
		}

		republished, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Orphan republish job failed", "error", handleErr)
		}
		if republished > 0 {
			j.logger.InfoContext(ctx, "Orphan republish job recovered orders", "republished", republished)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Orphan republish job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *OrphanRepublishJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Orphan republish job stopped")
}
