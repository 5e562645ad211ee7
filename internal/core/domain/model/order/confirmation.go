package order

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
)

// Confirmation is the proof that a purchase was committed. It is a value:
// once built it cannot change.
type Confirmation struct {
	orderID          kernel.UUID
	paymentReference payment.Reference
	itemID           kernel.UUID
	sellerID         kernel.UUID
	buyerID          kernel.UUID
	totalPaid        kernel.Money
	status           Status
	source           Source
	createdAt        time.Time
}

// NewConfirmation builds the confirmation for an order that the remote
// order function created from p.
func NewConfirmation(orderID kernel.UUID, p Payload, createdAt time.Time) Confirmation {
	return Confirmation{
		orderID:          orderID,
		paymentReference: p.PaymentReference,
		itemID:           p.ItemID,
		sellerID:         p.SellerID,
		buyerID:          p.BuyerID,
		totalPaid:        p.Amount,
		status:           Paid,
		source:           SourcePrimary,
		createdAt:        createdAt.UTC(),
	}
}

// ConfirmationOf builds the confirmation for a persisted order.
func ConfirmationOf(o *Order) Confirmation {
	return Confirmation{
		orderID:          o.ID(),
		paymentReference: o.PaymentReference(),
		itemID:           o.ItemID(),
		sellerID:         o.SellerID(),
		buyerID:          o.BuyerID(),
		totalPaid:        o.Amount(),
		status:           o.Status(),
		source:           o.Source(),
		createdAt:        o.CreatedAt(),
	}
}

func (c Confirmation) OrderID() kernel.UUID                { return c.orderID }
func (c Confirmation) PaymentReference() payment.Reference { return c.paymentReference }
func (c Confirmation) ItemID() kernel.UUID                 { return c.itemID }
func (c Confirmation) SellerID() kernel.UUID               { return c.sellerID }
func (c Confirmation) BuyerID() kernel.UUID                { return c.buyerID }
func (c Confirmation) TotalPaid() kernel.Money             { return c.totalPaid }
func (c Confirmation) Status() Status                      { return c.status }
func (c Confirmation) Source() Source                      { return c.source }
func (c Confirmation) CreatedAt() time.Time                { return c.createdAt }

// IsZero reports whether c is the zero value.
func (c Confirmation) IsZero() bool {
	return c.paymentReference.IsZero()
}
