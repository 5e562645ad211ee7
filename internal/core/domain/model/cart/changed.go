// Package cart holds the event published when a buyer's cart changes.
package cart

import "checkout/internal/core/domain/model/kernel"

// Changed reports the new size of a user's cart.
type Changed struct {
	UserID kernel.UUID
	Size   int
}
