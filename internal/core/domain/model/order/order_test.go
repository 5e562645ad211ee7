package order_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallbackOrder(t *testing.T) {
	s := newSummary(t, "250.00", "95.00")
	buyerID := kernel.NewUUID()
	ref := payment.NewReference()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should create a paid fallback order from the payload", func(t *testing.T) {
		p := order.BuildPayload(s, buyerID, ref)

		o, err := order.NewFallbackOrder(kernel.NewUUID(), p, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, order.SourceFallback, o.Source())
		assert.Equal(t, ref, o.PaymentReference())
		assert.Equal(t, "345.00", o.Amount().String())
		assert.True(t, o.NeedsFinalisation())
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should keep an encrypted address when one was produced", func(t *testing.T) {
		p := order.BuildPayload(s, buyerID, ref).WithEncryptedAddress("enc:xyz")

		o, err := order.NewFallbackOrder(kernel.NewUUID(), p, now)

		require.NoError(t, err)
		assert.False(t, o.NeedsFinalisation())
	})

	t.Run("should fail without a reference", func(t *testing.T) {
		p := order.BuildPayload(s, buyerID, "")

		o, err := order.NewFallbackOrder(kernel.NewUUID(), p, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		o, err := order.NewFallbackOrder(kernel.UUID{}, order.Payload{}, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "money must be created")
		assert.Contains(t, err.Error(), "paymentReference")
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())

	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
}

func TestRestoreOrder(t *testing.T) {
	amount := mustMoney(t, "345.00")
	fee := mustMoney(t, "95.00")

	t.Run("defaults the source to primary", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, fee, order.Paid, payment.NewReference(), "enc", "Courier Guy", "", time.Now(),
		)

		require.NoError(t, err)
		assert.Equal(t, order.SourcePrimary, o.Source())
		assert.False(t, o.NeedsFinalisation())
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, fee, order.Unknown, payment.NewReference(), "", "", order.SourcePrimary, time.Now(),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_AttachShippingAddress(t *testing.T) {
	p := order.BuildPayload(newSummary(t, "10", "5"), kernel.NewUUID(), payment.NewReference())
	o, _ := order.NewFallbackOrder(kernel.NewUUID(), p, time.Now())

	require.ErrorIs(t, o.AttachShippingAddress(" "), errs.ErrValueIsRequired)
	require.NoError(t, o.AttachShippingAddress("enc:1"))
	assert.False(t, o.NeedsFinalisation())

	err := o.AttachShippingAddress("enc:2")
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	assert.Equal(t, "enc:1", o.ShippingAddressEncrypted())
}

func TestOrder_Lifecycle(t *testing.T) {
	p := order.BuildPayload(newSummary(t, "10", "5"), kernel.NewUUID(), payment.NewReference())

	t.Run("paid order can be delivered", func(t *testing.T) {
		o, _ := order.NewFallbackOrder(kernel.NewUUID(), p, time.Now())

		require.NoError(t, o.Pay())
		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		o, _ := order.NewFallbackOrder(kernel.NewUUID(), p, time.Now())
		_ = o.Deliver()

		err := o.Cancel()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delivered is not a valid status to cancel")
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("cancelled order cannot be paid", func(t *testing.T) {
		o, _ := order.NewFallbackOrder(kernel.NewUUID(), p, time.Now())
		require.NoError(t, o.Cancel())

		require.Error(t, o.Pay())
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestConfirmation(t *testing.T) {
	buyerID := kernel.NewUUID()
	ref := payment.NewReference()
	p := order.BuildPayload(newSummary(t, "250.00", "95.00"), buyerID, ref)
	orderID := kernel.NewUUID()

	c := order.NewConfirmation(orderID, p, time.Now())

	assert.True(t, c.OrderID().IsEqual(orderID))
	assert.Equal(t, ref, c.PaymentReference())
	assert.Equal(t, "345.00", c.TotalPaid().String())
	assert.Equal(t, order.Paid, c.Status())
	assert.Equal(t, order.SourcePrimary, c.Source())
	assert.False(t, c.IsZero())
	assert.True(t, order.Confirmation{}.IsZero())

	fallback, _ := order.NewFallbackOrder(kernel.NewUUID(), p, time.Now())
	fc := order.ConfirmationOf(fallback)
	assert.Equal(t, order.SourceFallback, fc.Source())
	assert.Equal(t, ref, fc.PaymentReference())
}
