package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

// AddressBook is what one address source knows about a user. Either entry
// may be missing or incomplete.
type AddressBook struct {
	Pickup   *kernel.AddressFields
	Shipping *kernel.AddressFields
}

// AddressSource is one storage representation of user addresses.
type AddressSource interface {
	// Name identifies the source in logs.
	Name() string

	// Lookup returns the addresses stored for userID. A user without any
	// stored address yields an empty AddressBook and no error.
	Lookup(ctx context.Context, userID kernel.UUID) (AddressBook, error)
}

// SellerAccounts exposes the payment destination configured on a seller's
// account.
type SellerAccounts interface {
	// PaymentDestination returns errs.ObjectNotFoundError when the seller
	// has none.
	PaymentDestination(ctx context.Context, sellerID kernel.UUID) (string, error)
}

// BuyerDirectory resolves contact details for a buyer.
type BuyerDirectory interface {
	Email(ctx context.Context, userID kernel.UUID) (string, error)
}
