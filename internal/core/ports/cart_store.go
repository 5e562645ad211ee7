package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
)

// CartStore is the buyer's cart. Checkout only removes purchased items.
type CartStore interface {
	Remove(ctx context.Context, userID, itemID kernel.UUID) error
}

// Notifier records the confirmation notification for buyer and seller.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, confirmation order.Confirmation) error
}
