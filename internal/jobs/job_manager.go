package jobs

import (
	"fmt"
	"log/slog"
)

// scheduledJob is a background job driven by its own cron scheduler.
type scheduledJob interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  scheduledJob
}

// JobManager starts and stops the background jobs of the service as a unit.
type JobManager struct {
	jobs []namedJob
}

// NewJobManager wires the quotation expiry sweep.
func NewJobManager(expirer QuotationExpirer, expireSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "expire quotations", job: NewExpireQuotationsJob(expirer, expireSchedule, logger)},
		},
	}
}

// StartAll starts the jobs in order. When one fails, those already running
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order and waits for running ticks.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
