package payment

import (
	"errors"
	"fmt"

	"checkout/internal/pkg/errs"
)

var (
	// ErrCaptureInFlight rejects a second capture while one is processing.
	ErrCaptureInFlight = errors.New("a payment for this checkout is already being processed")

	// ErrAlreadyCharged rejects any new capture once the buyer has been charged.
	ErrAlreadyCharged = errors.New("this checkout has already been paid")
)

// Status is the state of a payment attempt.
//
//	Idle ──> Processing ──┬──> Succeeded
//	  ^                   ├──> Failed ────┐
//	  │                   └──> Cancelled ─┤
//	  └───────────────────────────────────┘ (retry)
//
// Failed and Cancelled also move to Succeeded when a late success arrives.
type Status int

const (
	Idle Status = iota
	Processing
	Succeeded
	Failed
	Cancelled
)

var statusStrings = map[Status]string{
	Idle:       "idle",
	Processing: "processing",
	Succeeded:  "succeeded",
	Failed:     "failed",
	Cancelled:  "cancelled",
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Attempt is the transient payment state of a checkout session.
type Attempt struct {
	Reference Reference
	Status    Status
}

// NewAttempt starts an idle attempt for the session's reference.
func NewAttempt(reference Reference) Attempt {
	return Attempt{Reference: reference, Status: Idle}
}

// Begin moves to Processing. A failed or cancelled attempt may begin again
// with the same reference.
func (a Attempt) Begin() (Attempt, error) {
	switch a.Status {
	case Processing:
		return a, ErrCaptureInFlight
	case Succeeded:
		return a, ErrAlreadyCharged
	case Idle, Failed, Cancelled:
		if a.Reference.IsZero() {
			return a, errs.NewValueIsRequiredError("paymentReference")
		}
		a.Status = Processing
		return a, nil
	default:
		return a, invalidTransition(a.Status, Processing)
	}
}

// Succeed records that the gateway charged the buyer. A success reported
// after the attempt timed out or was closed still counts: the charge went
// through for the same reference.
func (a Attempt) Succeed() (Attempt, error) {
	switch a.Status {
	case Processing, Succeeded, Failed, Cancelled:
		a.Status = Succeeded
		return a, nil
	default:
		return a, invalidTransition(a.Status, Succeeded)
	}
}

// Fail records a gateway error.
func (a Attempt) Fail() (Attempt, error) {
	if a.Status != Processing {
		return a, invalidTransition(a.Status, Failed)
	}
	a.Status = Failed
	return a, nil
}

// Cancel records that the buyer closed the payment window. Cancelling from
// Idle is a no-op.
func (a Attempt) Cancel() (Attempt, error) {
	switch a.Status {
	case Idle, Cancelled:
		return a, nil
	case Processing:
		a.Status = Cancelled
		return a, nil
	default:
		return a, invalidTransition(a.Status, Cancelled)
	}
}

// InFlight reports whether a capture is currently processing.
func (a Attempt) InFlight() bool {
	return a.Status == Processing
}

// Charged reports whether money has moved for this attempt.
func (a Attempt) Charged() bool {
	return a.Status == Succeeded
}

func invalidTransition(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid",
		fmt.Errorf("cannot move from %s to %s", from, to),
	)
}
