package checkout

import "strconv"

// Step is a position in the checkout flow.
type Step int

const (
	StepSummary Step = iota + 1
	StepDelivery
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepSummary:
		return "summary"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "step(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s Step) Valid() bool {
	return s >= StepSummary && s <= StepConfirmation
}

// ParseStep accepts the step name or its number.
func ParseStep(v string) (Step, bool) {
	for s := StepSummary; s <= StepConfirmation; s++ {
		if v == s.String() || v == strconv.Itoa(int(s)) {
			return s, true
		}
	}
	return 0, false
}

// StepSet is a set of completed steps.
type StepSet uint8

func (ss StepSet) Has(s Step) bool {
	return s.Valid() && ss&(1<<uint(s)) != 0
}

func (ss StepSet) With(s Step) StepSet {
	if !s.Valid() {
		return ss
	}
	return ss | 1<<uint(s)
}

// Steps lists the members in flow order.
func (ss StepSet) Steps() []Step {
	steps := make([]Step, 0, 4)
	for s := StepSummary; s <= StepConfirmation; s++ {
		if ss.Has(s) {
			steps = append(steps, s)
		}
	}
	return steps
}
