// Package gateway connects checkout to the hosted payment gateway. The
// buyer pays in the gateway's window; its callback reaches this service over
// HTTP and is handed to the capture waiting for it.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

const defaultWindow = 15 * time.Minute

var (
	_ ports.PaymentGateway = &Bridge{}

	ErrWindowAlreadyOpen = errors.New("a payment window is already open for this reference")
	ErrWindowExpired     = fault.New(fault.Timeout, "The payment window expired before the payment was completed. Please try again.")
)

// Bridge implements ports.PaymentGateway for a gateway that reports through
// browser callbacks. Register reserves the reference before the buyer is
// sent to the gateway, so a callback that arrives before Open starts waiting
// is kept for it. Open blocks until Deliver is called for the reference, the
// window expires or ctx is done.
type Bridge struct {
	mu      sync.Mutex
	pending map[payment.Reference]*window
	window  time.Duration
	logger  *slog.Logger
}

type window struct {
	results   chan payment.GatewayResult
	waiting   bool
	delivered bool
}

// NewBridge creates a bridge. timeout bounds how long a capture waits for the
// buyer; zero uses 15 minutes.
func NewBridge(timeout time.Duration, logger *slog.Logger) *Bridge {
	if timeout <= 0 {
		timeout = defaultWindow
	}
	return &Bridge{
		pending: make(map[payment.Reference]*window),
		window:  timeout,
		logger:  logger.With("component", "payment_gateway"),
	}
}

// Register reserves the payment window for request.Reference. It returns
// ErrWindowAlreadyOpen while an earlier window for the reference is pending.
func (b *Bridge) Register(request payment.Request) error {
	ref := request.Reference
	if ref.IsZero() {
		return errs.NewValueIsRequiredError("paymentReference")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.pending[ref]; ok {
		return ErrWindowAlreadyOpen
	}
	b.pending[ref] = newWindow()
	return nil
}

// Open waits for the callback of request.Reference, claiming the window
// reserved by Register or reserving one itself.
func (b *Bridge) Open(ctx context.Context, request payment.Request) (payment.GatewayResult, error) {
	ref := request.Reference
	if ref.IsZero() {
		return payment.GatewayResult{}, errs.NewValueIsRequiredError("paymentReference")
	}

	b.mu.Lock()
	w, ok := b.pending[ref]
	switch {
	case ok && w.waiting:
		b.mu.Unlock()
		return payment.GatewayResult{}, ErrWindowAlreadyOpen
	case !ok:
		w = newWindow()
		b.pending[ref] = w
	}
	w.waiting = true
	b.mu.Unlock()

	defer b.forget(ref, w)

	b.logger.InfoContext(ctx, "Payment window opened",
		"reference", ref.String(), "amount_minor", request.AmountMinorUnits)

	timer := time.NewTimer(b.window)
	defer timer.Stop()

	select {
	case result := <-w.results:
		return result, nil
	case <-timer.C:
		b.logger.WarnContext(ctx, "Payment window expired", "reference", ref.String())
		return payment.GatewayResult{}, ErrWindowExpired
	case <-ctx.Done():
		return payment.GatewayResult{}, ctx.Err()
	}
}

// Deliver hands a gateway callback to the window of its reference. Only the
// first callback per window is accepted; a repeat, or a callback without a
// pending window, returns errs.ObjectNotFoundError.
func (b *Bridge) Deliver(result payment.GatewayResult) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, ok := b.pending[result.Reference]
	if !ok || w.delivered {
		return errs.NewObjectNotFoundError("payment window", result.Reference.String())
	}
	w.delivered = true
	w.results <- result
	return nil
}

// Pending reports whether a window is reserved or open for reference.
func (b *Bridge) Pending(reference payment.Reference) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[reference]
	return ok
}

func (b *Bridge) forget(ref payment.Reference, w *window) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending[ref] == w {
		delete(b.pending, ref)
	}
}

func newWindow() *window {
	return &window{results: make(chan payment.GatewayResult, 1)}
}
