package commands

import (
	"context"
	"errors"
	"fmt"

	"checkout/internal/core/application/addressing"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
)

// ErrNoShippingAddress is reported for an order whose buyer no longer has
// a complete address in any source.
var ErrNoShippingAddress = errors.New("no complete shipping address for buyer")

// AddressLookup resolves a party's complete address.
type AddressLookup interface {
	Resolve(ctx context.Context, partyID kernel.UUID, role addressing.Role) (*kernel.Address, error)
}

// FinalizeFallbackOrdersCommandHandler completes fallback orders. Orders
// that cannot be finalised are skipped and reported; the others are still
// committed.
type FinalizeFallbackOrdersCommandHandler struct {
	uowFactory UoWFactory
	addresses  AddressLookup
	encryptor  ports.AddressEncryptor
}

// NewFinalizeFallbackOrdersCommandHandler creates the handler.
func NewFinalizeFallbackOrdersCommandHandler(
	uowFactory UoWFactory,
	addresses AddressLookup,
	encryptor ports.AddressEncryptor,
) FinalizeFallbackOrdersCommandHandler {
	return FinalizeFallbackOrdersCommandHandler{
		uowFactory: uowFactory,
		addresses:  addresses,
		encryptor:  encryptor,
	}
}

// Handle finalises up to BatchSize orders and returns how many were
// updated. The returned error joins the per-order failures.
//
// Example:
//
//	n, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("finalised %d orders, some failed: %v", n, err)
//	}
func (h FinalizeFallbackOrdersCommandHandler) Handle(ctx context.Context, command FinalizeFallbackOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	pending, err := orders.GetAllNeedingFinalisation(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var (
		updated  int
		failures []error
	)
	for _, o := range pending {
		if !o.NeedsFinalisation() {
			continue
		}

		address, resolveErr := h.addresses.Resolve(ctx, o.BuyerID(), addressing.Buyer)
		if resolveErr != nil {
			return 0, resolveErr
		}
		if address == nil {
			failures = append(failures, fmt.Errorf("order %s: %w", o.PaymentReference(), ErrNoShippingAddress))
			continue
		}

		encrypted, encErr := h.encryptor.Encrypt(ctx, *address)
		if encErr != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", o.PaymentReference(), encErr))
			continue
		}

		if err = o.AttachShippingAddress(encrypted); err != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", o.PaymentReference(), err))
			continue
		}

		if err = orders.Update(ctx, o); err != nil {
			return 0, err
		}
		updated++
	}

	if updated > 0 {
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return updated, errors.Join(failures...)
}
