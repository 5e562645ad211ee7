package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"checkout/internal/adapters/out/memory"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T, updatedAt time.Time) checkout.Session {
	t.Helper()

	price, err := kernel.MoneyFromString("120.00")
	require.NoError(t, err)
	it, err := item.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Lamp", price, 0.8)
	require.NoError(t, err)
	seller, err := kernel.NewAddress(kernel.AddressFields{
		Street: "1 Long St", City: "Cape Town", Province: "Western Cape", PostalCode: "8001",
	})
	require.NoError(t, err)

	s, err := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), "buyer@example.com", it, seller, nil,
		payment.NewReference(), updatedAt)
	require.NoError(t, err)
	return s
}

type MockSessionSweeper struct{ mock.Mock }

func (m *MockSessionSweeper) Sweep(ctx context.Context, expired func(checkout.Session) bool) (int, error) {
	args := m.Called(ctx, expired)
	return args.Int(0), args.Error(1)
}

func TestSessionExpiryJob_Run(t *testing.T) {
	store := memory.NewSessionStore()

	stale := newSession(t, epoch.Add(-2*time.Hour))
	fresh := newSession(t, epoch.Add(-time.Minute))
	inFlight := newSession(t, epoch.Add(-2*time.Hour))
	var err error
	inFlight.Payment, err = inFlight.Payment.Begin()
	require.NoError(t, err)

	for _, s := range []checkout.Session{stale, fresh, inFlight} {
		require.NoError(t, store.Create(t.Context(), s))
	}

	job := NewSessionExpiryJob(store, "0 * * * * *", time.Hour, 15*time.Minute, slog.New(slog.DiscardHandler))
	job.now = func() time.Time { return epoch }

	job.Run(t.Context())

	assert.Equal(t, 2, store.Len())
	_, err = store.Get(t.Context(), stale.ID)
	require.Error(t, err)
	_, err = store.Get(t.Context(), fresh.ID)
	require.NoError(t, err)
	_, err = store.Get(t.Context(), inFlight.ID)
	require.NoError(t, err)
}

func TestSessionExpiryJob_RunSweepError(t *testing.T) {
	sweeper := &MockSessionSweeper{}
	sweeper.On("Sweep", mock.Anything, mock.Anything).Return(0, errors.New("store closed"))

	job := NewSessionExpiryJob(sweeper, "0 * * * * *", time.Hour, time.Hour, slog.New(slog.DiscardHandler))

	assert.NotPanics(t, func() { job.Run(t.Context()) })
	sweeper.AssertExpectations(t)
}
