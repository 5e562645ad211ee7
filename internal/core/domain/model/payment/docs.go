// Package payment holds the transient payment state of a checkout: the
// reference minted per session, the attempt state machine and the shapes
// exchanged with the payment gateway.
package payment
