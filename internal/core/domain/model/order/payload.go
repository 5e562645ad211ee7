package order

import (
	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
)

// Payload is the field mapping shared by the remote order function and the
// local fallback insert. Both paths build it with BuildPayload only.
type Payload struct {
	BuyerID                  kernel.UUID
	SellerID                 kernel.UUID
	ItemID                   kernel.UUID
	PaymentReference         payment.Reference
	Amount                   kernel.Money
	ItemPrice                kernel.Money
	DeliveryPrice            kernel.Money
	DeliveryOption           delivery.Option
	DeliveryMethod           string
	ShippingAddress          kernel.Address
	EncryptedShippingAddress string
}

// BuildPayload maps a summary to the order creation fields.
func BuildPayload(summary Summary, buyerID kernel.UUID, reference payment.Reference) Payload {
	return Payload{
		BuyerID:          buyerID,
		SellerID:         summary.SellerID(),
		ItemID:           summary.ItemID(),
		PaymentReference: reference,
		Amount:           summary.TotalPrice(),
		ItemPrice:        summary.ItemPrice(),
		DeliveryPrice:    summary.DeliveryPrice(),
		DeliveryOption:   summary.Delivery(),
		DeliveryMethod:   summary.Delivery().Label(),
		ShippingAddress:  summary.BuyerAddress(),
	}
}

// WithEncryptedAddress returns a copy carrying the encrypted shipping address.
func (p Payload) WithEncryptedAddress(encrypted string) Payload {
	p.EncryptedShippingAddress = encrypted
	return p
}
