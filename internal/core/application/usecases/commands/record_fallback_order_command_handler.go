package commands

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
)

// RecordFallbackOrderCommandHandler inserts the fallback order and takes the
// item off sale in one transaction.
//
// The payment reference is unique across orders, so a duplicate callback or
// a remote order that did land after all resolves to the existing order
// instead of a second one.
type RecordFallbackOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRecordFallbackOrderCommandHandler creates the handler.
func NewRecordFallbackOrderCommandHandler(uowFactory UoWFactory) RecordFallbackOrderCommandHandler {
	return RecordFallbackOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle writes the order and returns it. When an order already exists for
// the payment reference that order is returned and nothing is written.
func (h RecordFallbackOrderCommandHandler) Handle(ctx context.Context, cmd RecordFallbackOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewFallbackOrder(cmd.OrderID(), cmd.Payload(), cmd.CreatedAt())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil, err
		}

		// The failed insert aborted the transaction; read outside it.
		_ = uow.Rollback(ctx)
		return uow.OrderRepository().GetByReference(ctx, o.PaymentReference())
	}

	items := uow.ItemRepository()
	it, err := items.Get(ctx, o.ItemID())
	if err != nil {
		return nil, err
	}

	it.MarkSold()
	if err = items.Update(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
