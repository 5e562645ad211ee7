package order

import (
	"fmt"

	"checkout/internal/pkg/errs"
)

// Status is the lifecycle state of a persisted order.
//
//	Pending ──┬──> Paid ──┬──> Delivered
//	          │           │
//	          └───────────┴──> Cancelled
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Paid
	Cancelled
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Paid:      "paid",
		Cancelled: "cancelled",
		Delivered: "delivered",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus is the inverse of String.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Pay transitions Pending to Paid. Paying an already paid order is allowed
// so that a replayed gateway callback stays harmless.
func (s Status) Pay() (Status, error) {
	if s != Pending && s != Paid {
		return Unknown, transitionError(s, "pay")
	}
	return Paid, nil
}

// Cancel transitions Pending or Paid to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return Unknown, transitionError(s, "cancel")
	}
	return Cancelled, nil
}

// Deliver transitions Paid to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Paid {
		return Unknown, transitionError(s, "deliver")
	}
	return Delivered, nil
}

func transitionError(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
