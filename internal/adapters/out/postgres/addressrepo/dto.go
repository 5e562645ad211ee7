// Package addressrepo implements the three address sources a user's
// addresses may live in: the current address table, the comma-separated
// text kept on legacy profiles, and the address book.
package addressrepo

import (
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const (
	PurposePickup   = "pickup"
	PurposeShipping = "shipping"
)

// AddressDTO is a row of the current address table, one per user and purpose.
type AddressDTO struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Purpose        string    `gorm:"size:16;primaryKey"`
	Street         string    `gorm:"size:255"`
	City           string    `gorm:"size:128"`
	Province       string    `gorm:"size:128"`
	PostalCode     string    `gorm:"size:16"`
	Country        string    `gorm:"size:64"`
	AdditionalInfo string    `gorm:"size:255"`
}

func (AddressDTO) TableName() string {
	return "user_addresses"
}

// LegacyProfileDTO predates structured addresses: each address is one
// comma-separated line.
type LegacyProfileDTO struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PickupAddress   string    `gorm:"type:text"`
	ShippingAddress string    `gorm:"type:text"`
}

func (LegacyProfileDTO) TableName() string {
	return "profiles"
}

// AddressBookEntryDTO is one saved address; the newest entry per purpose wins.
type AddressBookEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Purpose        string    `gorm:"size:16;not null"`
	Label          string    `gorm:"size:64"`
	Street         string    `gorm:"size:255"`
	City           string    `gorm:"size:128"`
	Province       string    `gorm:"size:128"`
	PostalCode     string    `gorm:"size:16"`
	Country        string    `gorm:"size:64"`
	AdditionalInfo string    `gorm:"size:255"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (AddressBookEntryDTO) TableName() string {
	return "address_book_entries"
}

func (d AddressDTO) fields() *kernel.AddressFields {
	return &kernel.AddressFields{
		Street:         d.Street,
		City:           d.City,
		Province:       d.Province,
		PostalCode:     d.PostalCode,
		Country:        d.Country,
		AdditionalInfo: d.AdditionalInfo,
	}
}

func (d AddressBookEntryDTO) fields() *kernel.AddressFields {
	return &kernel.AddressFields{
		Street:         d.Street,
		City:           d.City,
		Province:       d.Province,
		PostalCode:     d.PostalCode,
		Country:        d.Country,
		AdditionalInfo: d.AdditionalInfo,
	}
}

// parseLegacy reads "street, city, province, postal code[, country]".
// Anything with fewer parts yields nil.
func parseLegacy(line string) *kernel.AddressFields {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 4 {
		return nil
	}

	f := &kernel.AddressFields{
		Street:     parts[0],
		City:       parts[1],
		Province:   parts[2],
		PostalCode: parts[3],
	}
	if len(parts) > 4 {
		f.Country = parts[4]
	}
	if len(parts) > 5 {
		f.AdditionalInfo = strings.Join(parts[5:], ", ")
	}
	return f
}
