package checkout

import (
	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// Event is something that happened to a checkout session.
type Event interface {
	event()
}

// StepRequested asks to move to Step. Moving forward is limited to the next
// step and requires that step's data; moving back is always allowed until
// money has moved.
type StepRequested struct{ Step Step }

// QuotesRequested marks the start of a quote fetch for AddressVersion.
type QuotesRequested struct{ AddressVersion int }

// QuotesLoaded delivers the quote result computed for AddressVersion.
type QuotesLoaded struct {
	Options        []delivery.Option
	Warning        string
	AddressVersion int
}

// DeliverySelected is the buyer's explicit choice of option.
type DeliverySelected struct{ OptionID string }

// AddressEditRequested returns the buyer to address entry.
type AddressEditRequested struct{}

// AddressUpdated replaces the buyer address.
type AddressUpdated struct{ Address kernel.Address }

// PaymentStarted begins a capture.
type PaymentStarted struct{}

// PaymentCancelled means the buyer closed the payment window.
type PaymentCancelled struct{}

// PaymentFailed carries the classified gateway error.
type PaymentFailed struct{ Error fault.Classification }

// PaymentFinalizing means the buyer was charged but no order could be
// recorded on either creation path.
type PaymentFinalizing struct{ Message string }

// PaymentCompleted carries the confirmation of the committed order.
type PaymentCompleted struct{ Confirmation order.Confirmation }

// Failed stores an error without changing the step.
type Failed struct{ Error fault.Classification }

// ErrorDismissed clears the stored error.
type ErrorDismissed struct{}

func (StepRequested) event()        {}
func (QuotesRequested) event()      {}
func (QuotesLoaded) event()         {}
func (DeliverySelected) event()     {}
func (AddressEditRequested) event() {}
func (AddressUpdated) event()       {}
func (PaymentStarted) event()       {}
func (PaymentCancelled) event()     {}
func (PaymentFailed) event()        {}
func (PaymentFinalizing) event()    {}
func (PaymentCompleted) event()     {}
func (Failed) event()               {}
func (ErrorDismissed) event()       {}
