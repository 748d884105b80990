// Package jobs provides scheduled background tasks of the quotation workflow.
//
// Jobs use github.com/robfig/cron/v3 with a leading seconds field and call
// command handlers exactly like the HTTP adapter does.
//
// ExpireQuotationsJob cancels Quoted quotations whose quotes have all passed
// their validity. It runs once a minute unless EXPIRE_SCHEDULE says otherwise.
// The JobManager owns its lifetime:
//
//	jobManager := jobs.NewJobManager(&expireHandler, cfg.ExpireSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A sweep that fails is logged and retried on the next tick. Quotations that
// were paid or cancelled between the listing and the cancellation are skipped
// by the handler.
package jobs
