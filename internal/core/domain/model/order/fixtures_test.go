package order_test

import (
	"testing"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/item"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustAddress(t *testing.T, city, province string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{
		Street:     "12 Long Street",
		City:       city,
		Province:   province,
		PostalCode: "8001",
		Country:    "South Africa",
	})
	require.NoError(t, err)
	return a
}

func newSummary(t *testing.T, itemPrice, deliveryPrice string) order.Summary {
	t.Helper()
	it, err := item.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "Vintage camera", mustMoney(t, itemPrice), 1.2, "ACCT_1", true)
	require.NoError(t, err)

	opt := delivery.Option{
		ID:            "opt-1",
		CourierID:     "courier-guy-economy",
		ServiceName:   "Economy",
		ProviderName:  "Courier Guy",
		Price:         mustMoney(t, deliveryPrice),
		EstimatedDays: 3,
		Zone:          delivery.National,
	}

	s, err := order.NewSummary(it, opt, mustAddress(t, "Johannesburg", "Gauteng"), mustAddress(t, "Cape Town", "Western Cape"))
	require.NoError(t, err)
	return s
}
