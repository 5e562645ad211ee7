package kernel

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// AddressFields is the raw, possibly incomplete, shape of an address as
// stored by the address sources.
type AddressFields struct {
	Street         string
	City           string
	Province       string
	PostalCode     string
	Country        string
	AdditionalInfo string
}

// Address is a complete postal address: street, city, province and postal
// code are all non-empty. Incomplete data cannot become an Address, so every
// Address handed to quoting or payment is complete by construction.
type Address struct { //nolint:recvcheck //using for validation
	fields AddressFields
	guard  guard.ConstructorGuard
}

// NewAddress trims f and validates completeness. All missing fields are
// reported together.
//
// Example:
//
//	addr, err := kernel.NewAddress(kernel.AddressFields{
//	    Street: "12 Long Street", City: "Cape Town",
//	    Province: "Western Cape", PostalCode: "8001", Country: "South Africa",
//	})
func NewAddress(f AddressFields) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	f = f.trimmed()
	if err := errors.Join(
		required("street", f.Street),
		required("city", f.City),
		required("province", f.Province),
		required("postalCode", f.PostalCode),
	); err != nil {
		return Address{}, err
	}

	a.fields = f
	return a, nil
}

// IsComplete reports whether f would produce a valid Address.
func (f AddressFields) IsComplete() bool {
	_, err := NewAddress(f)
	return err == nil
}

// Validate ensures the Address was built through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Fields returns a copy of the address parts.
func (a Address) Fields() AddressFields {
	return a.fields
}

func (a Address) Street() string         { return a.fields.Street }
func (a Address) City() string           { return a.fields.City }
func (a Address) Province() string       { return a.fields.Province }
func (a Address) PostalCode() string     { return a.fields.PostalCode }
func (a Address) Country() string        { return a.fields.Country }
func (a Address) AdditionalInfo() string { return a.fields.AdditionalInfo }

// SameCity compares cities case-insensitively.
func (a Address) SameCity(other Address) bool {
	return strings.EqualFold(a.fields.City, other.fields.City)
}

// SameProvince compares provinces case-insensitively.
func (a Address) SameProvince(other Address) bool {
	return strings.EqualFold(a.fields.Province, other.fields.Province)
}

// IsEqual compares all parts case-insensitively.
func (a Address) IsEqual(other Address) bool {
	return strings.EqualFold(a.fields.Street, other.fields.Street) &&
		a.SameCity(other) &&
		a.SameProvince(other) &&
		strings.EqualFold(a.fields.PostalCode, other.fields.PostalCode) &&
		strings.EqualFold(a.fields.Country, other.fields.Country)
}

// String renders a single-line label, e.g. "12 Long Street, Cape Town, Western Cape, 8001".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.fields.Street, a.fields.City, a.fields.Province, a.fields.PostalCode)
}

func (f AddressFields) trimmed() AddressFields {
	return AddressFields{
		Street:         strings.TrimSpace(f.Street),
		City:           strings.TrimSpace(f.City),
		Province:       strings.TrimSpace(f.Province),
		PostalCode:     strings.TrimSpace(f.PostalCode),
		Country:        strings.TrimSpace(f.Country),
		AdditionalInfo: strings.TrimSpace(f.AdditionalInfo),
	}
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
