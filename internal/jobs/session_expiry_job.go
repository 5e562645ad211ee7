package jobs

import (
	"context"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/checkout"

	"github.com/robfig/cron/v3"
)

// SessionSweeper removes stored sessions matching a predicate.
type SessionSweeper interface {
	Sweep(ctx context.Context, expired func(checkout.Session) bool) (int, error)
}

// SessionExpiryJob discards idle and long-finished checkout sessions.
// Sessions with a payment in flight, or charged without an order, are kept.
type SessionExpiryJob struct {
	sessions  SessionSweeper
	schedule  string
	idleTTL   time.Duration
	retention time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewSessionExpiryJob(
	sessions SessionSweeper,
	schedule string,
	idleTTL, retention time.Duration,
	logger *slog.Logger,
) *SessionExpiryJob {
	return &SessionExpiryJob{
		sessions:  sessions,
		schedule:  schedule,
		idleTTL:   idleTTL,
		retention: retention,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "session_expiry_job"),
	}
}

// Run performs one sweep.
func (j *SessionExpiryJob) Run(ctx context.Context) {
	now := j.now()
	removed, err := j.sessions.Sweep(ctx, func(s checkout.Session) bool {
		return s.Expired(now, j.idleTTL, j.retention)
	})
	if err != nil {
		j.logger.ErrorContext(ctx, "Session expiry job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired checkout sessions removed", "count", removed)
	}
}

func (j *SessionExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started", "schedule", j.schedule)
	return nil
}

func (j *SessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
