package fault

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Any *Error of the same Kind matches its sentinel.
var (
	ErrAddressIncomplete       = &Error{Kind: AddressIncomplete}
	ErrSellerNotReady          = &Error{Kind: SellerNotReady}
	ErrQuoteServiceUnavailable = &Error{Kind: QuoteServiceUnavailable}
	ErrOrderCreationFailed     = &Error{Kind: OrderCreationFailed}
	ErrValidation              = &Error{Kind: ValidationError}
)

// Error is a checkout error that already knows its Kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New returns an *Error with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an *Error that keeps cause for logging.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Classification returns the user-facing form of e.
func (e *Error) Classification() Classification {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.DefaultMessage()
	}
	return Classification{Kind: e.Kind, Message: msg}
}

// RemoteError is a non-2xx answer from a backend function or service.
// Payload holds the decoded JSON body (or the raw text when it was not JSON);
// only the error classifier interprets its shape.
type RemoteError struct {
	Service    string
	StatusCode int
	Payload    any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}
