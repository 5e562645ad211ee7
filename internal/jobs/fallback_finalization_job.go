package jobs

import (
	"context"
	"log/slog"

	"checkout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FallbackFinalizer completes locally recorded fallback orders.
type FallbackFinalizer interface {
	Handle(ctx context.Context, command commands.FinalizeFallbackOrdersCommand) (int, error)
}

// FallbackFinalizationJob periodically finalises fallback orders recorded
// without an encrypted shipping address.
type FallbackFinalizationJob struct {
	finalizer FallbackFinalizer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewFallbackFinalizationJob(
	finalizer FallbackFinalizer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *FallbackFinalizationJob {
	return &FallbackFinalizationJob{
		finalizer: finalizer,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "fallback_finalization_job"),
	}
}

// Run finalises one batch.
func (j *FallbackFinalizationJob) Run(ctx context.Context) {
	cmd, err := commands.NewFinalizeFallbackOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Fallback finalization job misconfigured", "error", err)
		return
	}

	finalised, err := j.finalizer.Handle(ctx, cmd)
	if finalised > 0 {
		j.logger.InfoContext(ctx, "Fallback orders finalised", "count", finalised)
	}
	if err != nil {
		// Partial failures are retried on the next tick.
		j.logger.WarnContext(ctx, "Fallback finalization job failed", "finalised", finalised, "error", err)
	}
}

func (j *FallbackFinalizationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fallback finalization job started", "schedule", j.schedule)
	return nil
}

func (j *FallbackFinalizationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Fallback finalization job stopped")
}
