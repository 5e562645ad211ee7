package jobs

import (
	"log/slog"
	"testing"
	"time"

	"checkout/internal/adapters/out/memory"

	"github.com/stretchr/testify/require"
)

func TestJobManager_StartAndStop(t *testing.T) {
	jm := NewJobManager(memory.NewSessionStore(), &MockFallbackFinalizer{}, Config{
		SessionSweepSchedule: "0 * * * * *",
		SessionIdleTTL:       time.Hour,
		SessionRetention:     time.Minute,
		FinalizeSchedule:     "0 0 * * * *",
		FinalizeBatchSize:    50,
	}, slog.New(slog.DiscardHandler))

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestJobManager_InvalidScheduleStopsStartedJobs(t *testing.T) {
	jm := NewJobManager(memory.NewSessionStore(), &MockFallbackFinalizer{}, Config{
		SessionSweepSchedule: "0 * * * * *",
		SessionIdleTTL:       time.Hour,
		FinalizeSchedule:     "every now and then",
		FinalizeBatchSize:    50,
	}, slog.New(slog.DiscardHandler))

	err := jm.StartAll()

	require.ErrorContains(t, err, "fallback finalization job")
}

func TestJobManager_InvalidSessionSchedule(t *testing.T) {
	jm := NewJobManager(memory.NewSessionStore(), &MockFallbackFinalizer{}, Config{
		SessionSweepSchedule: "",
		FinalizeSchedule:     "0 0 * * * *",
		FinalizeBatchSize:    50,
	}, slog.New(slog.DiscardHandler))

	require.ErrorContains(t, jm.StartAll(), "session expiry job")
}
