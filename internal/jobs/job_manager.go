package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds the schedules of the background jobs.
type Config struct {
	SessionSweepSchedule string
	SessionIdleTTL       time.Duration
	SessionRetention     time.Duration

	FinalizeSchedule  string
	FinalizeBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	sessionExpiryJob        *SessionExpiryJob
	fallbackFinalizationJob *FallbackFinalizationJob
}

func NewJobManager(
	sessions SessionSweeper,
	finalizer FallbackFinalizer,
	cfg Config,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionExpiryJob: NewSessionExpiryJob(
			sessions, cfg.SessionSweepSchedule, cfg.SessionIdleTTL, cfg.SessionRetention, logger),
		fallbackFinalizationJob: NewFallbackFinalizationJob(
			finalizer, cfg.FinalizeSchedule, cfg.FinalizeBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start session expiry job: %w", err)
	}

	if err := jm.fallbackFinalizationJob.Start(); err != nil {
		jm.sessionExpiryJob.Stop()
		return fmt.Errorf("failed to start fallback finalization job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to return.
func (jm *JobManager) StopAll() {
	jm.fallbackFinalizationJob.Stop()
	jm.sessionExpiryJob.Stop()
}
