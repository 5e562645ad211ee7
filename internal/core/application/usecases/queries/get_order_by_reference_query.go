package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/guard"
)

var ErrGetOrderByReferenceQueryIsNotConstructed = errors.New(
	"GetOrderByReferenceQuery must be created via NewGetOrderByReferenceQuery constructor",
)

// GetOrderByReferenceQuery finds the order recorded for a payment
// reference. Support staff use it with the reference shown to buyers.
//
// Example:
//
//	query, err := NewGetOrderByReferenceQuery("chk_4f0c...")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderByReferenceQuery struct {
	reference payment.Reference

	guard guard.ConstructorGuard
}

// NewGetOrderByReferenceQuery parses and validates the reference.
func NewGetOrderByReferenceQuery(reference string) (GetOrderByReferenceQuery, error) {
	ref, err := payment.ParseReference(reference)
	if err != nil {
		return GetOrderByReferenceQuery{}, err
	}
	return GetOrderByReferenceQuery{reference: ref, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByReferenceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByReferenceQueryIsNotConstructed)
}

func (q GetOrderByReferenceQuery) Reference() payment.Reference {
	return q.reference
}

// OrderView is the read model of one order.
type OrderView struct {
	ID               kernel.UUID
	PaymentReference payment.Reference
	BuyerID          kernel.UUID
	SellerID         kernel.UUID
	ItemID           kernel.UUID
	Amount           kernel.Money
	DeliveryPrice    kernel.Money
	DeliveryMethod   string
	Status           string
	Source           string
	Finalised        bool
	CreatedAt        time.Time
}
