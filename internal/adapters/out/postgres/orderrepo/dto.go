// Package orderrepo persists order aggregates. The payment reference is
// unique across the table; it is the idempotency key shared with the
// remote order function.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BuyerID                  uuid.UUID       `gorm:"type:uuid;index;not null"`
	SellerID                 uuid.UUID       `gorm:"type:uuid;index;not null"`
	ItemID                   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount                   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryPrice            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status                   int             `gorm:"not null"`
	PaymentReference         string          `gorm:"size:64;not null;uniqueIndex:idx_orders_payment_reference"`
	ShippingAddressEncrypted string          `gorm:"type:text"`
	DeliveryMethod           string          `gorm:"size:255"`
	Source                   string          `gorm:"size:16;not null;default:primary;index"`
	CreatedAt                time.Time       `gorm:"not null;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:                       o.ID().Bytes(),
		BuyerID:                  o.BuyerID().Bytes(),
		SellerID:                 o.SellerID().Bytes(),
		ItemID:                   o.ItemID().Bytes(),
		Amount:                   o.Amount().Decimal(),
		DeliveryPrice:            o.DeliveryPrice().Decimal(),
		Status:                   int(o.Status()),
		PaymentReference:         o.PaymentReference().String(),
		ShippingAddressEncrypted: o.ShippingAddressEncrypted(),
		DeliveryMethod:           o.DeliveryMethod(),
		Source:                   string(o.Source()),
		CreatedAt:                o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	deliveryPrice, err := kernel.NewMoney(dto.DeliveryPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, buyerID, sellerID, itemID,
		amount, deliveryPrice,
		order.Status(dto.Status),
		payment.Reference(dto.PaymentReference),
		dto.ShippingAddressEncrypted,
		dto.DeliveryMethod,
		order.Source(dto.Source),
		dto.CreatedAt,
	)
}
