package checkout

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
)

// ErrSessionNotAbandonable is returned when the buyer tries to leave a
// checkout whose charge already went through but has no order yet.
var ErrSessionNotAbandonable = errors.New("payment already succeeded, the order is being finalized")

// Session is the complete state of one buyer's checkout. It is a value:
// every change goes through Transition, which returns a new Session.
type Session struct {
	ID            kernel.UUID
	BuyerID       kernel.UUID
	BuyerEmail    string
	Item          *item.Item
	SellerAddress *kernel.Address
	BuyerAddress  *kernel.Address

	Step           Step
	CompletedSteps StepSet

	DeliveryOptions  []delivery.Option
	SelectedDelivery *delivery.Option
	Summary          *order.Summary

	// AddressEntry is set while the buyer has to type an address in.
	AddressEntry bool

	// AddressVersion increases on every buyer address change; quote results
	// for an older version are discarded.
	AddressVersion int

	Payment payment.Attempt

	// PaymentSummary is the summary the latest payment window was opened
	// for. It survives address edits so a late charge is recorded for what
	// the buyer actually paid.
	PaymentSummary *order.Summary
	Confirmation   *order.Confirmation

	// NeedsSupport is set when the buyer was charged but no order could be
	// recorded. The buyer is directed to support with the payment reference.
	NeedsSupport bool

	Loading bool
	Error   *fault.Classification
	Warning string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession opens a checkout on the summary step. The seller address is
// mandatory; a missing buyer address only means the buyer will be asked
// for one on the delivery step.
func NewSession(
	id, buyerID kernel.UUID,
	buyerEmail string,
	it *item.Item,
	seller kernel.Address,
	buyer *kernel.Address,
	reference payment.Reference,
	now time.Time,
) (Session, error) {
	if err := errors.Join(id.Validate(), buyerID.Validate(), it.Validate()); err != nil {
		return Session{}, err
	}
	if err := seller.Validate(); err != nil {
		return Session{}, fault.Wrap(fault.SellerNotReady, "", err)
	}
	if buyer != nil && buyer.Validate() != nil {
		buyer = nil
	}

	return Session{
		ID:            id,
		BuyerID:       buyerID,
		BuyerEmail:    buyerEmail,
		Item:          it,
		SellerAddress: &seller,
		BuyerAddress:  buyer,
		Step:          StepSummary,
		Payment:       payment.NewAttempt(reference),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Reference is the payment reference minted for this session.
func (s Session) Reference() payment.Reference {
	return s.Payment.Reference
}

// Completed reports whether the checkout reached its terminal step.
func (s Session) Completed() bool {
	return s.Step == StepConfirmation
}

// CanAbandon rejects leaving a checkout while a successful charge has no
// order to show for it.
func (s Session) CanAbandon() error {
	if s.Payment.Charged() && s.Confirmation == nil {
		return ErrSessionNotAbandonable
	}
	return nil
}

// Idle reports how long the session has gone without a change.
func (s Session) Idle(now time.Time) time.Duration {
	return now.Sub(s.UpdatedAt)
}

// Expired reports whether the session can be discarded: an open checkout
// idle for longer than idleTTL, or a completed one older than retention.
// A session with a payment in flight or a charge without an order is never
// expired.
func (s Session) Expired(now time.Time, idleTTL, retention time.Duration) bool {
	if s.Payment.InFlight() || s.CanAbandon() != nil {
		return false
	}
	if s.Completed() {
		return s.Idle(now) > retention
	}
	return s.Idle(now) > idleTTL
}
