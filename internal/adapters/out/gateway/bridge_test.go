package gateway_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"checkout/internal/adapters/out/gateway"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitPending(t *testing.T, b *gateway.Bridge, ref payment.Reference) {
	t.Helper()
	require.Eventually(t, func() bool { return b.Pending(ref) }, time.Second, 5*time.Millisecond)
}

func TestBridge_DeliversCallback(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()

	type opened struct {
		result payment.GatewayResult
		err    error
	}
	done := make(chan opened, 1)
	go func() {
		r, err := b.Open(t.Context(), payment.Request{Reference: ref, AmountMinorUnits: 34500})
		done <- opened{r, err}
	}()
	waitPending(t, b, ref)

	require.NoError(t, b.Deliver(payment.SuccessResult(ref, "success", "T77")))
	got := <-done

	require.NoError(t, got.err)
	assert.Equal(t, payment.OutcomeSuccess, got.result.Outcome)
	assert.Equal(t, "T77", got.result.TransactionID)
	assert.False(t, b.Pending(ref))

	err := b.Deliver(payment.SuccessResult(ref, "success", "T77"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestBridge_SecondOpenIsRejected(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	go func() { _, _ = b.Open(ctx, payment.Request{Reference: ref}) }()
	waitPending(t, b, ref)

	_, err := b.Open(t.Context(), payment.Request{Reference: ref})

	require.ErrorIs(t, err, gateway.ErrWindowAlreadyOpen)
}

func TestBridge_WindowExpires(t *testing.T) {
	b := gateway.NewBridge(20*time.Millisecond, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()

	_, err := b.Open(t.Context(), payment.Request{Reference: ref})

	require.ErrorIs(t, err, gateway.ErrWindowExpired)
	var fe *fault.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fault.Timeout, fe.Kind)
	assert.False(t, b.Pending(ref))
}

func TestBridge_RequiresReference(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))

	_, err := b.Open(t.Context(), payment.Request{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestBridge_CallbackBeforeOpenIsKept(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()
	request := payment.Request{Reference: ref, AmountMinorUnits: 34500}

	require.NoError(t, b.Register(request))
	require.NoError(t, b.Deliver(payment.SuccessResult(ref, "success", "T78")))

	got, err := b.Open(t.Context(), request)

	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeSuccess, got.Outcome)
	assert.Equal(t, "T78", got.TransactionID)
	assert.False(t, b.Pending(ref))
}

func TestBridge_RepeatedCallbackBeforeOpen(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()
	require.NoError(t, b.Register(payment.Request{Reference: ref}))

	require.NoError(t, b.Deliver(payment.ClosedResult(ref)))
	err := b.Deliver(payment.SuccessResult(ref, "success", "T79"))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	got, err := b.Open(t.Context(), payment.Request{Reference: ref})
	require.NoError(t, err)
	assert.Equal(t, payment.OutcomeClosed, got.Outcome)
}

func TestBridge_RegisterTwiceIsRejected(t *testing.T) {
	b := gateway.NewBridge(time.Minute, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()

	require.NoError(t, b.Register(payment.Request{Reference: ref}))
	err := b.Register(payment.Request{Reference: ref})

	require.ErrorIs(t, err, gateway.ErrWindowAlreadyOpen)
	require.ErrorIs(t, b.Register(payment.Request{}), errs.ErrValueIsRequired)
}

func TestBridge_CallbackAfterExpiryHasNoWindow(t *testing.T) {
	b := gateway.NewBridge(20*time.Millisecond, slog.New(slog.DiscardHandler))
	ref := payment.NewReference()
	require.NoError(t, b.Register(payment.Request{Reference: ref}))

	_, err := b.Open(t.Context(), payment.Request{Reference: ref})
	require.ErrorIs(t, err, gateway.ErrWindowExpired)

	err = b.Deliver(payment.SuccessResult(ref, "success", "T80"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
