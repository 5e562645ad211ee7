package fault

// Kind is a member of the closed checkout error taxonomy.
type Kind string

const (
	AddressIncomplete       Kind = "address_incomplete"
	SellerNotReady          Kind = "seller_not_ready"
	QuoteServiceUnavailable Kind = "quote_service_unavailable"
	PopupBlocked            Kind = "popup_blocked"
	NetworkError            Kind = "network_error"
	Timeout                 Kind = "timeout"
	OrderCreationFailed     Kind = "order_creation_failed"
	ValidationError         Kind = "validation_error"
	ServiceUnavailable      Kind = "service_unavailable"
	Unknown                 Kind = "unknown"
)

// GenericMessage is shown whenever no usable text can be extracted from an error.
const GenericMessage = "Something went wrong. Please try again."

var defaultMessages = map[Kind]string{
	AddressIncomplete:       "Please enter a complete delivery address.",
	SellerNotReady:          "This seller cannot accept orders yet. Checkout is unavailable for this item.",
	QuoteServiceUnavailable: "Live courier quotes are unavailable, an estimated delivery fee is shown instead.",
	PopupBlocked:            "The payment window was blocked. Allow pop-ups for this site and try again.",
	NetworkError:            "We could not reach the server. Check your connection and try again.",
	Timeout:                 "The request took too long. Please try again.",
	OrderCreationFailed:     "Your payment succeeded and your order is being finalized. Contact support with your payment reference if it does not appear shortly.",
	ValidationError:         "Some details are invalid. Please correct them and try again.",
	ServiceUnavailable:      "The service is temporarily unavailable. Please try again shortly.",
	Unknown:                 GenericMessage,
}

// Retryable reports whether the user should be offered a retry.
// SellerNotReady and OrderCreationFailed are terminal for the session; a
// validation or address problem needs corrected input rather than a retry.
func (k Kind) Retryable() bool {
	switch k {
	case ValidationError, SellerNotReady, AddressIncomplete, OrderCreationFailed:
		return false
	default:
		return true
	}
}

// Fatal reports whether checkout cannot continue at all.
func (k Kind) Fatal() bool {
	return k == SellerNotReady
}

// DefaultMessage is the user-facing text used when the error carries none.
func (k Kind) DefaultMessage() string {
	if msg, ok := defaultMessages[k]; ok {
		return msg
	}
	return GenericMessage
}

func (k Kind) String() string {
	return string(k)
}

// Classification is the normalized form of any error shown to the user.
type Classification struct {
	Kind    Kind
	Message string
}

// Retryable reports whether a retry affordance should be offered.
func (c Classification) Retryable() bool {
	return c.Kind.Retryable()
}
