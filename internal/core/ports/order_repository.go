package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A second order for the same payment
	// reference is rejected with errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByReference retrieves the order created for a payment reference.
	// Returns errs.ObjectNotFoundError when there is none.
	GetByReference(ctx context.Context, reference payment.Reference) (*order.Order, error)

	// GetAllNeedingFinalisation returns up to limit fallback orders that
	// still lack an encrypted shipping address, oldest first.
	GetAllNeedingFinalisation(ctx context.Context, limit int) ([]*order.Order, error)
}
