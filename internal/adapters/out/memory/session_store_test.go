package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"checkout/internal/adapters/out/memory"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, now time.Time) checkout.Session {
	t.Helper()
	price, err := kernel.MoneyFromString("120.00")
	require.NoError(t, err)
	it, err := item.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "Kettle", price, 1, "ACCT_1", true)
	require.NoError(t, err)
	seller, err := kernel.NewAddress(kernel.AddressFields{Street: "3 Loop St", City: "Cape Town", Province: "Western Cape", PostalCode: "8001"})
	require.NoError(t, err)

	s, err := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), "b@example.com", it, seller, nil, payment.NewReference(), now)
	require.NoError(t, err)
	return s
}

func TestSessionStore_CRUD(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore()
	s := newSession(t, time.Now())

	require.NoError(t, store.Create(ctx, s))
	require.ErrorIs(t, store.Create(ctx, s), errs.ErrObjectAlreadyExists)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Reference(), got.Reference())

	updated, err := store.Update(ctx, s.ID, func(cur checkout.Session) (checkout.Session, error) {
		cur.Warning = "estimate"
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "estimate", updated.Warning)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, store.Delete(ctx, s.ID), errs.ErrObjectNotFound)
}

func TestSessionStore_FailedUpdateStoresNothing(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore()
	s := newSession(t, time.Now())
	require.NoError(t, store.Create(ctx, s))
	boom := errors.New("rejected")

	cur, err := store.Update(ctx, s.ID, func(cur checkout.Session) (checkout.Session, error) {
		cur.Warning = "changed"
		return cur, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Empty(t, cur.Warning)
	got, _ := store.Get(ctx, s.ID)
	assert.Empty(t, got.Warning)
}

func TestSessionStore_UpdatesAreSerialised(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore()
	s := newSession(t, time.Now())
	require.NoError(t, store.Create(ctx, s))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, s.ID, func(cur checkout.Session) (checkout.Session, error) {
				cur.AddressVersion++
				return cur, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.AddressVersion)
}

func TestSessionStore_Sweep(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore()
	now := time.Now()
	stale := newSession(t, now.Add(-time.Hour))
	fresh := newSession(t, now)
	require.NoError(t, store.Create(ctx, stale))
	require.NoError(t, store.Create(ctx, fresh))

	removed, err := store.Sweep(ctx, func(s checkout.Session) bool {
		return s.Expired(now, 30*time.Minute, time.Hour)
	})

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	_, err = store.Get(ctx, fresh.ID)
	require.NoError(t, err)
}

func TestSessionStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := memory.NewSessionStore().Get(ctx, kernel.NewUUID())

	require.ErrorIs(t, err, context.Canceled)
}
