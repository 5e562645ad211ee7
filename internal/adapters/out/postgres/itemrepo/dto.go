// Package itemrepo persists marketplace listings.
package itemrepo

import (
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is the items table row.
type ItemDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Title              string          `gorm:"size:255;not null"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	WeightKg           float64         `gorm:"not null;default:0"`
	PaymentDestination string          `gorm:"size:128"`
	Available          bool            `gorm:"not null;default:true"`
}

// TableName specifies the database table name for items.
func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(it *item.Item) ItemDTO {
	return ItemDTO{
		ID:                 it.ID().Bytes(),
		SellerID:           it.SellerID().Bytes(),
		Title:              it.Title(),
		Price:              it.Price().Decimal(),
		WeightKg:           it.WeightKg(),
		PaymentDestination: it.PaymentDestination(),
		Available:          it.IsAvailable(),
	}
}

func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return item.RestoreItem(id, sellerID, dto.Title, price, dto.WeightKg, dto.PaymentDestination, dto.Available)
}
