package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultExpireQuotationsSchedule runs the expiry sweep at the top of every minute.
const DefaultExpireQuotationsSchedule = "0 * * * * *"

// ExpireQuotationsTimeout bounds a single sweep.
const ExpireQuotationsTimeout = 30 * time.Second

// QuotationExpirer is the command the job runs on every tick.
type QuotationExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireQuotationsCommand) ([]kernel.UUID, error)
}

// ExpireQuotationsJob periodically cancels Quoted quotations whose quotes
// have all expired.
type ExpireQuotationsJob struct {
	handler  QuotationExpirer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpireQuotationsJob creates the job. An empty schedule falls back to
// DefaultExpireQuotationsSchedule; schedules take a leading seconds field.
func NewExpireQuotationsJob(handler QuotationExpirer, schedule string, logger *slog.Logger) *ExpireQuotationsJob {
	if schedule == "" {
		schedule = DefaultExpireQuotationsSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpireQuotationsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expire_quotations_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *ExpireQuotationsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expire quotations job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep within ExpireQuotationsTimeout.
func (j *ExpireQuotationsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), ExpireQuotationsTimeout)
	defer cancel()

	cancelled, err := j.handler.Handle(ctx, commands.NewExpireQuotationsCommand())
	for _, id := range cancelled {
		j.logger.InfoContext(ctx, "Quotation expired", "quotation_id", id.String())
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Expire quotations job failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *ExpireQuotationsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expire quotations job stopped")
}
