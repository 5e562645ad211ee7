package ports

import (
	"context"

	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
)

// ItemRepository reads and updates marketplace listings.
type ItemRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)
	Update(ctx context.Context, aggregate *item.Item) error
}
