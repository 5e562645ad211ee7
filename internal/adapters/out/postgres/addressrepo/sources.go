package addressrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"gorm.io/gorm"
)

// CurrentSource reads the structured user_addresses table.
type CurrentSource struct {
	db *gorm.DB
}

func NewCurrentSource(db *gorm.DB) *CurrentSource {
	return &CurrentSource{db: db}
}

func (s *CurrentSource) Name() string { return "current" }

func (s *CurrentSource) Lookup(ctx context.Context, userID kernel.UUID) (ports.AddressBook, error) {
	var rows []AddressDTO
	if err := s.db.WithContext(ctx).Find(&rows, "user_id = ?", userID.Bytes()).Error; err != nil {
		return ports.AddressBook{}, err
	}

	var book ports.AddressBook
	for _, row := range rows {
		switch row.Purpose {
		case PurposePickup:
			book.Pickup = row.fields()
		case PurposeShipping:
			book.Shipping = row.fields()
		}
	}
	return book, nil
}

// Save upserts one address of a user.
func (s *CurrentSource) Save(ctx context.Context, userID kernel.UUID, purpose string, f kernel.AddressFields) error {
	row := AddressDTO{
		UserID:         userID.Bytes(),
		Purpose:        purpose,
		Street:         f.Street,
		City:           f.City,
		Province:       f.Province,
		PostalCode:     f.PostalCode,
		Country:        f.Country,
		AdditionalInfo: f.AdditionalInfo,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

// LegacySource reads the free-text addresses on old profiles.
type LegacySource struct {
	db *gorm.DB
}

func NewLegacySource(db *gorm.DB) *LegacySource {
	return &LegacySource{db: db}
}

func (s *LegacySource) Name() string { return "legacy_profile" }

func (s *LegacySource) Lookup(ctx context.Context, userID kernel.UUID) (ports.AddressBook, error) {
	var row LegacyProfileDTO
	err := s.db.WithContext(ctx).First(&row, "user_id = ?", userID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.AddressBook{}, nil
	}
	if err != nil {
		return ports.AddressBook{}, err
	}

	return ports.AddressBook{
		Pickup:   parseLegacy(row.PickupAddress),
		Shipping: parseLegacy(row.ShippingAddress),
	}, nil
}

// BookSource reads the address book, newest entry per purpose.
type BookSource struct {
	db *gorm.DB
}

func NewBookSource(db *gorm.DB) *BookSource {
	return &BookSource{db: db}
}

func (s *BookSource) Name() string { return "address_book" }

func (s *BookSource) Lookup(ctx context.Context, userID kernel.UUID) (ports.AddressBook, error) {
	var rows []AddressBookEntryDTO
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return ports.AddressBook{}, err
	}

	var book ports.AddressBook
	for _, row := range rows {
		switch {
		case row.Purpose == PurposePickup && book.Pickup == nil:
			book.Pickup = row.fields()
		case row.Purpose == PurposeShipping && book.Shipping == nil:
			book.Shipping = row.fields()
		}
	}
	return book, nil
}
