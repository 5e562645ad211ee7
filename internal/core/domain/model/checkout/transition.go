package checkout

import (
	"fmt"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/order"
)

// Rejection messages shown to the buyer.
const (
	msgSellerAddressMissing = "The seller has no shipping address yet."
	msgBuyerAddressMissing  = "Add your delivery address before choosing a delivery option."
	msgSelectDelivery       = "Choose a delivery option to continue."
	msgStepSkipped          = "Complete the current step first."
	msgConfirmationLocked   = "The order is confirmed and can no longer be changed."
	msgPaymentLocked        = "A payment is in progress for this checkout."
	msgUnknownOption        = "That delivery option is no longer available."
	msgNotOnDelivery        = "Delivery can only be changed on the delivery step."
)

// Transition applies e to s. It is pure: s is never modified, and on error
// the returned Session is s unchanged. Errors are *fault.Error values (or
// payment attempt errors) for the caller to record with a Failed event.
func Transition(s Session, e Event) (Session, error) {
	switch ev := e.(type) {
	case StepRequested:
		return requestStep(s, ev.Step)
	case QuotesRequested:
		if ev.AddressVersion != s.AddressVersion {
			return s, nil
		}
		s.Loading = true
		s.Warning = ""
		return s, nil
	case QuotesLoaded:
		return loadQuotes(s, ev), nil
	case DeliverySelected:
		return selectDelivery(s, ev.OptionID)
	case AddressEditRequested:
		return editAddress(s)
	case AddressUpdated:
		return updateAddress(s, ev)
	case PaymentStarted:
		return startPayment(s)
	case PaymentCancelled:
		attempt, err := s.Payment.Cancel()
		if err != nil {
			return s, err
		}
		s.Payment = attempt
		s.Loading = false
		return s, nil
	case PaymentFailed:
		attempt, err := s.Payment.Fail()
		if err != nil {
			return s, err
		}
		s.Payment = attempt
		s.Loading = false
		s.Error = &ev.Error
		return s, nil
	case PaymentFinalizing:
		return finalizing(s, ev.Message)
	case PaymentCompleted:
		return complete(s, ev.Confirmation)
	case Failed:
		s.Loading = false
		s.Error = &ev.Error
		return s, nil
	case ErrorDismissed:
		s.Error = nil
		return s, nil
	default:
		return s, fmt.Errorf("unsupported checkout event %T", e)
	}
}

func requestStep(s Session, target Step) (Session, error) {
	if !target.Valid() {
		return s, fault.New(fault.ValidationError, fmt.Sprintf("%s is not a checkout step", target))
	}
	if s.Step == StepConfirmation {
		if target == StepConfirmation {
			return s, nil
		}
		return s, fault.New(fault.ValidationError, msgConfirmationLocked)
	}
	if target == s.Step {
		return s, nil
	}
	if target < s.Step {
		if s.Payment.InFlight() || s.Payment.Charged() {
			return s, fault.New(fault.ValidationError, msgPaymentLocked)
		}
		s.Step = target
		s.Error = nil
		return s, nil
	}
	if target != s.Step+1 {
		return s, fault.New(fault.ValidationError, msgStepSkipped)
	}

	switch target {
	case StepDelivery:
		if s.SellerAddress == nil {
			return s, fault.New(fault.SellerNotReady, msgSellerAddressMissing)
		}
		s.AddressEntry = s.BuyerAddress == nil
	case StepPayment:
		if s.BuyerAddress == nil {
			return s, fault.New(fault.AddressIncomplete, msgBuyerAddressMissing)
		}
		if s.SelectedDelivery == nil {
			return s, fault.New(fault.ValidationError, msgSelectDelivery)
		}
		summary, err := order.NewSummary(s.Item, *s.SelectedDelivery, *s.BuyerAddress, *s.SellerAddress)
		if err != nil {
			return s, fault.Wrap(fault.ValidationError, "", err)
		}
		s.Summary = &summary
	default:
		return s, fault.New(fault.ValidationError, msgStepSkipped)
	}

	s.CompletedSteps = s.CompletedSteps.With(s.Step)
	s.Step = target
	s.Error = nil
	return s, nil
}

func loadQuotes(s Session, ev QuotesLoaded) Session {
	if ev.AddressVersion != s.AddressVersion {
		return s
	}
	options := make([]delivery.Option, len(ev.Options))
	copy(options, ev.Options)

	s.DeliveryOptions = options
	s.Warning = ev.Warning
	s.Loading = false
	if s.SelectedDelivery != nil {
		if _, ok := delivery.Find(options, s.SelectedDelivery.ID); !ok {
			s.SelectedDelivery = nil
			s.Summary = nil
		}
	}
	return s
}

func selectDelivery(s Session, optionID string) (Session, error) {
	if s.Step != StepDelivery {
		return s, fault.New(fault.ValidationError, msgNotOnDelivery)
	}
	if s.BuyerAddress == nil {
		return s, fault.New(fault.ValidationError, msgBuyerAddressMissing)
	}
	option, ok := delivery.Find(s.DeliveryOptions, optionID)
	if !ok {
		return s, fault.New(fault.ValidationError, msgUnknownOption)
	}
	s.SelectedDelivery = &option
	s.Summary = nil
	s.Error = nil
	return s, nil
}

func editAddress(s Session) (Session, error) {
	if s.Step != StepDelivery && s.Step != StepPayment {
		return s, fault.New(fault.ValidationError, msgNotOnDelivery)
	}
	if s.Payment.InFlight() || s.Payment.Charged() {
		return s, fault.New(fault.ValidationError, msgPaymentLocked)
	}
	s.Step = StepDelivery
	s.AddressEntry = true
	s.SelectedDelivery = nil
	s.Summary = nil
	s.Error = nil
	return s, nil
}

func updateAddress(s Session, ev AddressUpdated) (Session, error) {
	if err := ev.Address.Validate(); err != nil {
		return s, fault.Wrap(fault.AddressIncomplete, "", err)
	}
	if s.Step != StepDelivery {
		return s, fault.New(fault.ValidationError, msgNotOnDelivery)
	}
	if s.Payment.InFlight() || s.Payment.Charged() {
		return s, fault.New(fault.ValidationError, msgPaymentLocked)
	}
	address := ev.Address
	s.BuyerAddress = &address
	s.AddressEntry = false
	s.AddressVersion++
	s.DeliveryOptions = nil
	s.SelectedDelivery = nil
	s.Summary = nil
	s.Error = nil
	return s, nil
}

func startPayment(s Session) (Session, error) {
	if s.Step != StepPayment || s.Summary == nil {
		return s, fault.New(fault.ValidationError, msgStepSkipped)
	}
	attempt, err := s.Payment.Begin()
	if err != nil {
		return s, err
	}
	summary := *s.Summary
	s.Payment = attempt
	s.PaymentSummary = &summary
	s.Loading = true
	s.Error = nil
	return s, nil
}

func finalizing(s Session, message string) (Session, error) {
	attempt, err := s.Payment.Succeed()
	if err != nil {
		return s, err
	}
	s.Payment = attempt
	s.Loading = false
	s.NeedsSupport = true
	s.Error = &fault.Classification{Kind: fault.OrderCreationFailed, Message: message}
	return s, nil
}

func complete(s Session, c order.Confirmation) (Session, error) {
	if c.IsZero() {
		return s, fault.New(fault.ValidationError, "confirmation is required")
	}
	if c.PaymentReference() != s.Payment.Reference {
		return s, fault.New(fault.ValidationError, "confirmation belongs to another payment")
	}
	if s.Confirmation != nil {
		return s, nil
	}
	attempt, err := s.Payment.Succeed()
	if err != nil {
		return s, err
	}
	s.Payment = attempt
	s.Confirmation = &c
	s.CompletedSteps = s.CompletedSteps.With(StepSummary).With(StepDelivery).With(StepPayment)
	s.Step = StepConfirmation
	s.Loading = false
	s.NeedsSupport = false
	s.Error = nil
	return s, nil
}
