// Package item models a marketplace listing as checkout sees it.
package item

import (
	"errors"
	"fmt"
	"strings"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when a zero-value Item is used.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// ErrItemIsUnavailable is returned when checkout starts on an item that has
// already been sold.
var ErrItemIsUnavailable = errors.New("item is no longer available")

// Item is a single listing offered by a seller.
type Item struct {
	id                 kernel.UUID
	sellerID           kernel.UUID
	title              string
	price              kernel.Money
	weightKg           float64
	paymentDestination string
	available          bool
	isConstructed      bool
}

// NewItem creates an available listing. The payment destination is
// optional at listing time and may be backfilled later.
func NewItem(id, sellerID kernel.UUID, title string, price kernel.Money, weightKg float64) (*Item, error) {
	i := &Item{available: true, isConstructed: true}

	var weightErr error
	if weightKg < 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%.2f is negative", weightKg))
	}

	var titleErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}

	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		titleErr,
		price.Validate(),
		weightErr,
	); err != nil {
		return nil, err
	}

	i.id = id
	i.sellerID = sellerID
	i.title = strings.TrimSpace(title)
	i.price = price
	i.weightKg = weightKg
	return i, nil
}

// RestoreItem rebuilds an Item from persistence.
func RestoreItem(
	id, sellerID kernel.UUID,
	title string,
	price kernel.Money,
	weightKg float64,
	paymentDestination string,
	available bool,
) (*Item, error) {
	i, err := NewItem(id, sellerID, title, price, weightKg)
	if err != nil {
		return nil, err
	}
	i.paymentDestination = strings.TrimSpace(paymentDestination)
	i.available = available
	return i, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID            { return i.id }
func (i *Item) SellerID() kernel.UUID      { return i.sellerID }
func (i *Item) Title() string              { return i.title }
func (i *Item) Price() kernel.Money        { return i.price }
func (i *Item) WeightKg() float64          { return i.weightKg }
func (i *Item) PaymentDestination() string { return i.paymentDestination }
func (i *Item) IsAvailable() bool          { return i.available }

// HasPaymentDestination reports whether funds from a sale can be routed to
// the seller.
func (i *Item) HasPaymentDestination() bool {
	return i.paymentDestination != ""
}

// AssignPaymentDestination records the seller's payment destination.
func (i *Item) AssignPaymentDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errs.NewValueIsRequiredError("paymentDestination")
	}
	i.paymentDestination = destination
	return nil
}

// MarkSold takes the listing off sale. Marking a sold item again is a no-op.
func (i *Item) MarkSold() {
	i.available = false
}
