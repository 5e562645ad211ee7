package order

import (
	"errors"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewFallbackOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewFallbackOrder or RestoreOrder constructor")
)

// Order is the durable record of a committed purchase. There is at most one
// Order per payment reference.
//
// Orders created by the remote order function are only read here; the
// service itself inserts orders on the fallback path only, already in Paid
// status because the gateway has charged the buyer by then.
type Order struct {
	id                       kernel.UUID
	buyerID                  kernel.UUID
	sellerID                 kernel.UUID
	itemID                   kernel.UUID
	amount                   kernel.Money
	deliveryPrice            kernel.Money
	status                   Status
	paymentReference         payment.Reference
	shippingAddressEncrypted string
	deliveryMethod           string
	source                   Source
	createdAt                time.Time
	isConstructed            bool
}

// NewFallbackOrder builds the minimal paid order inserted when the primary
// creation path failed after the charge. The encrypted shipping address may
// be empty; the finalisation job fills it in later.
//
// Example:
//
//	payload := order.BuildPayload(summary, buyerID, reference)
//	o, err := order.NewFallbackOrder(kernel.NewUUID(), payload, time.Now())
func NewFallbackOrder(id kernel.UUID, p Payload, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Paid,
		source:        SourceFallback,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(id, p.BuyerID, p.SellerID, p.ItemID),
		o.setAmounts(p.Amount, p.DeliveryPrice),
		o.setReference(p.PaymentReference),
	); err != nil {
		return nil, err
	}

	o.shippingAddressEncrypted = p.EncryptedShippingAddress
	o.deliveryMethod = p.DeliveryMethod
	o.createdAt = createdAt.UTC()
	return o, nil
}

// RestoreOrder rebuilds an Order from persistence.
func RestoreOrder(
	id, buyerID, sellerID, itemID kernel.UUID,
	amount, deliveryPrice kernel.Money,
	status Status,
	reference payment.Reference,
	shippingAddressEncrypted, deliveryMethod string,
	source Source,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setIDs(id, buyerID, sellerID, itemID),
		o.setAmounts(amount, deliveryPrice),
		o.setReference(reference),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.shippingAddressEncrypted = shippingAddressEncrypted
	o.deliveryMethod = deliveryMethod
	o.source = source
	if o.source == "" {
		o.source = SourcePrimary
	}
	o.createdAt = createdAt.UTC()
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                     { return o.id }
func (o *Order) BuyerID() kernel.UUID                { return o.buyerID }
func (o *Order) SellerID() kernel.UUID               { return o.sellerID }
func (o *Order) ItemID() kernel.UUID                 { return o.itemID }
func (o *Order) Amount() kernel.Money                { return o.amount }
func (o *Order) DeliveryPrice() kernel.Money         { return o.deliveryPrice }
func (o *Order) Status() Status                      { return o.status }
func (o *Order) PaymentReference() payment.Reference { return o.paymentReference }
func (o *Order) ShippingAddressEncrypted() string    { return o.shippingAddressEncrypted }
func (o *Order) DeliveryMethod() string              { return o.deliveryMethod }
func (o *Order) Source() Source                      { return o.source }
func (o *Order) CreatedAt() time.Time                { return o.createdAt }

// NeedsFinalisation reports whether a fallback order still lacks its
// encrypted shipping address.
func (o *Order) NeedsFinalisation() bool {
	return o.source == SourceFallback && o.shippingAddressEncrypted == "" && o.status == Paid
}

// AttachShippingAddress stores the encrypted buyer address. An address that
// is already set is never overwritten.
func (o *Order) AttachShippingAddress(encrypted string) error {
	encrypted = strings.TrimSpace(encrypted)
	if encrypted == "" {
		return errs.NewValueIsRequiredError("shippingAddressEncrypted")
	}
	if o.shippingAddressEncrypted != "" {
		return errs.NewObjectAlreadyExistsError("shippingAddressEncrypted", o.paymentReference.String())
	}
	o.shippingAddressEncrypted = encrypted
	return nil
}

// Pay marks the order as paid.
func (o *Order) Pay() error {
	return o.transition(o.status.Pay)
}

// Cancel cancels a pending or paid order.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

// Deliver marks a paid order as delivered.
func (o *Order) Deliver() error {
	return o.transition(o.status.Deliver)
}

func (o *Order) transition(next func() (Status, error)) error {
	s, err := next()
	if err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setIDs(id, buyerID, sellerID, itemID kernel.UUID) error {
	if err := errors.Join(id.Validate(), buyerID.Validate(), sellerID.Validate(), itemID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.buyerID = buyerID
	o.sellerID = sellerID
	o.itemID = itemID
	return nil
}

func (o *Order) setAmounts(amount, deliveryPrice kernel.Money) error {
	if err := errors.Join(amount.Validate(), deliveryPrice.Validate()); err != nil {
		return err
	}
	o.amount = amount
	o.deliveryPrice = deliveryPrice
	return nil
}

func (o *Order) setReference(reference payment.Reference) error {
	if reference.IsZero() {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	o.paymentReference = reference
	return nil
}
