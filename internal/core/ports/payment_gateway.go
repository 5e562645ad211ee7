package ports

import (
	"context"

	"checkout/internal/core/domain/model/payment"
)

// PaymentGateway opens the hosted payment window and reports exactly one
// callback for it.
type PaymentGateway interface {
	// Register reserves the window for request.Reference so that a callback
	// arriving before Open is kept rather than dropped.
	Register(request payment.Request) error

	// Open waits for the callback of request.Reference.
	Open(ctx context.Context, request payment.Request) (payment.GatewayResult, error)
}

// TransactionVerifier confirms a reported transaction with the gateway's
// server API.
type TransactionVerifier interface {
	Verify(ctx context.Context, reference payment.Reference, transactionID string) error
}
