package payment

import "strconv"

// Request opens the gateway for one charge.
type Request struct {
	Email            string
	AmountMinorUnits int64
	Reference        Reference
	Metadata         map[string]string
}

// Outcome is which gateway callback fired. Exactly one fires per opening.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeError
	OutcomeClosed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeClosed:
		return "closed"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}

// GatewayResult is the callback reported by the gateway.
type GatewayResult struct {
	Outcome       Outcome
	Reference     Reference
	Status        string
	TransactionID string

	// Err is the raw error payload of an error callback, in whatever shape
	// the gateway produced it.
	Err any
}

// SuccessResult returns a success callback.
func SuccessResult(reference Reference, status, transactionID string) GatewayResult {
	return GatewayResult{Outcome: OutcomeSuccess, Reference: reference, Status: status, TransactionID: transactionID}
}

// ErrorResult returns an error callback.
func ErrorResult(reference Reference, raw any) GatewayResult {
	return GatewayResult{Outcome: OutcomeError, Reference: reference, Err: raw}
}

// ClosedResult returns a close callback.
func ClosedResult(reference Reference) GatewayResult {
	return GatewayResult{Outcome: OutcomeClosed, Reference: reference}
}
