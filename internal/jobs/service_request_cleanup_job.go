package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ServiceRequestCleanupJob periodically deletes resolved service requests
// past their retention window so the table stays small. Pending requests are
// never touched.
type ServiceRequestCleanupJob struct {
	handler   commands.CleanupServiceRequestsCommandHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewServiceRequestCleanupJob creates the cleanup job. Retention is how long
// resolved requests are kept before deletion.
func NewServiceRequestCleanupJob(
	handler commands.CleanupServiceRequestsCommandHandler,
	retention time.Duration,
	logger *slog.Logger,
) *ServiceRequestCleanupJob {
	return &ServiceRequestCleanupJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "service_request_cleanup_job"),
	}
}

// Start schedules the cleanup to run at the top of every hour.
func (j *ServiceRequestCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.retention)

		cmd, err := commands.NewCleanupServiceRequestsCommand(cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Service request cleanup job misconfigured", "error", err)
			return
		}

		deleted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Service request cleanup job failed", "error", err)
			return
		}

		if deleted > 0 {
			j.logger.InfoContext(ctx, "Deleted resolved service requests", "count", deleted, "cutoff", cutoff)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Service request cleanup job started (running hourly)", "retention", j.retention)
	return nil
}

// Stop stops the cleanup job.
func (j *ServiceRequestCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Service request cleanup job stopped")
}
