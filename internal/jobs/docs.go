// Package jobs provides scheduled background tasks for the checkout service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field in the schedule.
//
// # Available Jobs
//
//  1. SessionExpiryJob removes checkout sessions that sat idle past their TTL
//     and completed sessions past their retention window. A session with a
//     payment in flight, or one charged without an order yet, is never removed.
//  2. FallbackFinalizationJob attaches the encrypted buyer address to
//     locally recorded fallback orders in batches, marking them finalised.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sessionStore, finalizeHandler, jobs.Config{
//		SessionSweepSchedule: "0 * * * * *",
//		SessionIdleTTL:       time.Hour,
//		SessionRetention:     15 * time.Minute,
//		FinalizeSchedule:     "*/30 * * * * *",
//		FinalizeBatchSize:    50,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log failures and wait for the next tick. A job that fails to
// start stops the jobs already running.
package jobs
