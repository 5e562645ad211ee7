// Package addressing resolves complete buyer and seller addresses from the
// address sources, in priority order.
package addressing

import (
	"context"
	"errors"
	"log/slog"

	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// Role is the party an address is resolved for.
type Role int

const (
	Buyer Role = iota + 1
	Seller
)

func (r Role) String() string {
	switch r {
	case Buyer:
		return "buyer"
	case Seller:
		return "seller"
	default:
		return "unknown"
	}
}

// Resolver tries each source in order and returns the first complete
// address. Partial results are never merged across sources.
//
// Within one source a seller prefers the pickup address and a buyer the
// shipping address, each falling back to the other entry.
type Resolver struct {
	sources  []ports.AddressSource
	accounts ports.SellerAccounts
	items    ports.ItemRepository
	logger   *slog.Logger
}

// NewResolver creates a resolver over sources, in priority order.
func NewResolver(
	accounts ports.SellerAccounts,
	items ports.ItemRepository,
	logger *slog.Logger,
	sources ...ports.AddressSource,
) *Resolver {
	return &Resolver{
		sources:  sources,
		accounts: accounts,
		items:    items,
		logger:   logger.With("component", "address_resolver"),
	}
}

// Resolve returns the first complete address for partyID, or nil when no
// source has one. Source failures are logged and skipped; only context
// cancellation is returned as an error.
func (r *Resolver) Resolve(ctx context.Context, partyID kernel.UUID, role Role) (*kernel.Address, error) {
	if err := partyID.Validate(); err != nil {
		return nil, err
	}

	for _, source := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		book, err := source.Lookup(ctx, partyID)
		if err != nil {
			r.logger.WarnContext(ctx, "Address source failed",
				"source", source.Name(), "role", role.String(), "party_id", partyID.String(), "error", err)
			continue
		}

		if addr, ok := pick(book, role); ok {
			r.logger.DebugContext(ctx, "Address resolved",
				"source", source.Name(), "role", role.String(), "party_id", partyID.String())
			return &addr, nil
		}
	}

	r.logger.InfoContext(ctx, "No complete address found", "role", role.String(), "party_id", partyID.String())
	return nil, nil
}

func pick(book ports.AddressBook, role Role) (kernel.Address, bool) {
	first, second := book.Shipping, book.Pickup
	if role == Seller {
		first, second = book.Pickup, book.Shipping
	}
	for _, fields := range []*kernel.AddressFields{first, second} {
		if fields == nil {
			continue
		}
		if addr, err := kernel.NewAddress(*fields); err == nil {
			return addr, true
		}
	}
	return kernel.Address{}, false
}

// EnsurePaymentDestination backfills the item's payment destination from
// the seller account when the item lacks one. It reports whether the item
// ends up with a destination. A failed write-back is logged, not returned;
// the in-memory item still carries the destination.
func (r *Resolver) EnsurePaymentDestination(ctx context.Context, it *item.Item) (bool, error) {
	if err := it.Validate(); err != nil {
		return false, err
	}
	if it.HasPaymentDestination() {
		return true, nil
	}

	destination, err := r.accounts.PaymentDestination(ctx, it.SellerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		r.logger.WarnContext(ctx, "Seller account lookup failed",
			"seller_id", it.SellerID().String(), "error", err)
		return false, nil
	}
	if err = it.AssignPaymentDestination(destination); err != nil {
		return false, nil
	}

	if err = r.items.Update(ctx, it); err != nil {
		r.logger.WarnContext(ctx, "Payment destination backfill failed",
			"item_id", it.ID().String(), "seller_id", it.SellerID().String(), "error", err)
	} else {
		r.logger.InfoContext(ctx, "Payment destination backfilled",
			"item_id", it.ID().String(), "seller_id", it.SellerID().String())
	}
	return true, nil
}
