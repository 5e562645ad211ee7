package order_test

import (
	"testing"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummary_TotalIsRecomputed(t *testing.T) {
	testCases := []struct {
		itemPrice     string
		deliveryPrice string
		total         string
	}{
		{"250.00", "95.00", "345.00"},
		{"0.10", "0.20", "0.30"},
		{"1999.99", "0.01", "2000.00"},
		{"100", "0", "100.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.total, func(t *testing.T) {
			s := newSummary(t, tc.itemPrice, tc.deliveryPrice)

			assert.Equal(t, tc.total, s.TotalPrice().String())
			assert.True(t, s.TotalPrice().Equal(s.ItemPrice().Add(s.DeliveryPrice())))
		})
	}
}

func TestNewSummary_RejectsIncompleteInputs(t *testing.T) {
	it, _ := item.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Camera", mustMoney(t, "10"), 1)
	opt := delivery.Option{ID: "1", CourierID: "c", ServiceName: "s", Price: mustMoney(t, "5"), EstimatedDays: 1, Zone: delivery.Local}

	t.Run("zero-value buyer address", func(t *testing.T) {
		_, err := order.NewSummary(it, opt, kernel.Address{}, mustAddress(t, "Cape Town", "Western Cape"))
		require.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
	})

	t.Run("invalid option", func(t *testing.T) {
		bad := opt
		bad.EstimatedDays = 0
		_, err := order.NewSummary(it, bad, mustAddress(t, "Cape Town", "Western Cape"), mustAddress(t, "Cape Town", "Western Cape"))
		require.Error(t, err)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := order.NewSummary(nil, opt, mustAddress(t, "Cape Town", "Western Cape"), mustAddress(t, "Cape Town", "Western Cape"))
		require.ErrorIs(t, err, item.ErrItemIsNotConstructed)
	})

	var zero order.Summary
	assert.Equal(t, order.ErrSummaryIsNotConstructed, zero.Validate())
}

func TestBuildPayload(t *testing.T) {
	s := newSummary(t, "250.00", "95.00")
	buyerID := kernel.NewUUID()
	ref := payment.NewReference()

	p := order.BuildPayload(s, buyerID, ref)

	assert.Equal(t, ref, p.PaymentReference)
	assert.True(t, p.BuyerID.IsEqual(buyerID))
	assert.True(t, p.SellerID.IsEqual(s.SellerID()))
	assert.True(t, p.ItemID.IsEqual(s.ItemID()))
	assert.Equal(t, "345.00", p.Amount.String())
	assert.Equal(t, "Courier Guy Economy (3 days)", p.DeliveryMethod)
	assert.Empty(t, p.EncryptedShippingAddress)
	assert.Equal(t, "enc:abc", p.WithEncryptedAddress("enc:abc").EncryptedShippingAddress)
	assert.Empty(t, p.EncryptedShippingAddress)
}
