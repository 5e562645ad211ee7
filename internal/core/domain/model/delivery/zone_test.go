package delivery_test

import (
	"testing"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func address(t *testing.T, city, province string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{
		Street:     "1 Main Road",
		City:       city,
		Province:   province,
		PostalCode: "0001",
		Country:    "South Africa",
	})
	require.NoError(t, err)
	return a
}

func TestClassifyZone(t *testing.T) {
	testCases := []struct {
		name     string
		seller   [2]string
		buyer    [2]string
		expected delivery.Zone
	}{
		{"same city same province", [2]string{"Cape Town", "Western Cape"}, [2]string{"Cape Town", "Western Cape"}, delivery.Local},
		{"same city different case", [2]string{"cape town", "Western Cape"}, [2]string{"Cape Town", "western cape"}, delivery.Local},
		{"same province different city", [2]string{"Stellenbosch", "Western Cape"}, [2]string{"Cape Town", "Western Cape"}, delivery.Provincial},
		{"different province", [2]string{"Cape Town", "Western Cape"}, [2]string{"Johannesburg", "Gauteng"}, delivery.National},
		{"same-named city in another province", [2]string{"Kimberley", "Northern Cape"}, [2]string{"Kimberley", "Gauteng"}, delivery.Local},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seller := address(t, tc.seller[0], tc.seller[1])
			buyer := address(t, tc.buyer[0], tc.buyer[1])

			assert.Equal(t, tc.expected, delivery.ClassifyZone(seller, buyer))
		})
	}
}

func TestClassifyZone_IsSymmetric(t *testing.T) {
	a := address(t, "Durban", "KwaZulu-Natal")
	b := address(t, "Pietermaritzburg", "KwaZulu-Natal")

	assert.Equal(t, delivery.ClassifyZone(a, b), delivery.ClassifyZone(b, a))
}

func TestZone_StringRoundTrip(t *testing.T) {
	for _, z := range []delivery.Zone{delivery.Local, delivery.Provincial, delivery.National} {
		parsed, err := delivery.ParseZone(z.String())
		require.NoError(t, err)
		assert.Equal(t, z, parsed)
	}

	_, err := delivery.ParseZone("international")
	require.Error(t, err)
	require.Error(t, delivery.ZoneUnknown.Validate())
}
