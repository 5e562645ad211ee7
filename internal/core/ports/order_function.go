package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// CreatedOrder is the remote order function's answer.
type CreatedOrder struct {
	ID        kernel.UUID
	CreatedAt time.Time
}

// OrderFunction is the backend function that records an order. It is
// idempotent on the payment reference.
type OrderFunction interface {
	CreateOrder(ctx context.Context, payload order.Payload) (CreatedOrder, error)
}

// AddressEncryptor prepares a shipping address for storage. The result is
// opaque to checkout.
type AddressEncryptor interface {
	Encrypt(ctx context.Context, address kernel.Address) (string, error)
}
