// Package checkout models a buyer's checkout as an explicit value object
// advanced by a pure transition function.
//
// The flow has four steps:
//
//	Summary -> Delivery -> Payment -> Confirmation
//
// A step is entered only when the previous step's data is present: the
// seller address before Delivery, a selected option (and buyer address)
// before Payment. Confirmation is reached only through PaymentCompleted.
// Errors are stored on the session and never move it backwards.
package checkout
