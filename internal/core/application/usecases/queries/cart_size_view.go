package queries

import (
	"context"
	"sync"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
)

// CartCounter counts cart items in the store of record.
type CartCounter interface {
	Size(ctx context.Context, userID kernel.UUID) (int, error)
}

// CartSizeView keeps the latest cart size per user as published by the
// cart repository, so the header badge never has to poll.
type CartSizeView struct {
	mu    sync.RWMutex
	sizes map[kernel.UUID]int
}

func NewCartSizeView() *CartSizeView {
	return &CartSizeView{sizes: make(map[kernel.UUID]int)}
}

// Apply records a cart change. It is the broker subscription callback.
func (v *CartSizeView) Apply(e cart.Changed) {
	v.mu.Lock()
	v.sizes[e.UserID] = e.Size
	v.mu.Unlock()
}

// Size returns the last known size and whether one was seen.
func (v *CartSizeView) Size(userID kernel.UUID) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n, ok := v.sizes[userID]
	return n, ok
}
