package courier_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout/internal/adapters/out/courier"
	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func address(t *testing.T, city, province, code string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{Street: "5 Dock Road", City: city, Province: province, PostalCode: code})
	require.NoError(t, err)
	return a
}

func newClient(t *testing.T, h http.HandlerFunc) *courier.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	hc, err := httpclient.New(httpclient.Config{Service: "courier-aggregator", BaseURL: srv.URL})
	require.NoError(t, err)
	return courier.NewClient(hc)
}

func TestClient_Quotes(t *testing.T) {
	from := address(t, "Cape Town", "Western Cape", "8001")
	to := address(t, "Durban", "KwaZulu-Natal", "4001")

	t.Run("maps rates", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/rates", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Cape Town", body["collection_address"].(map[string]any)["city"])
			assert.Equal(t, "4001", body["delivery_address"].(map[string]any)["code"])

			_, _ = w.Write([]byte(`{"rates":[
				{"rate":"95.00","rate_excluding_vat":82.61,"service_level":{"code":"ECO","name":"Economy","transit_days":3},
				 "provider":{"name":"The Courier Guy","reference":"tcg-1"}},
				{"rate":120,"service_level":{"code":"","name":"Overnight","transit_days":1},"provider":{"name":"Aramex"}}
			]}`))
		})

		quotes, err := c.Quotes(t.Context(), ports.QuoteRequest{From: from, To: to, WeightKg: 2})

		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, "ECO", quotes[0].CourierID)
		assert.Equal(t, "95", quotes[0].Cost.String())
		require.NotNil(t, quotes[0].PriceExclVAT)
		assert.Equal(t, "82.61", quotes[0].PriceExclVAT.String())
		assert.Equal(t, "tcg-1", quotes[0].ProviderRef)
		assert.Equal(t, "Aramex", quotes[1].ProviderName)
		assert.Nil(t, quotes[1].PriceExclVAT)
	})

	t.Run("non-2xx is a remote error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"rates temporarily unavailable"}`))
		})

		_, err := c.Quotes(t.Context(), ports.QuoteRequest{From: from, To: to, WeightKg: 2})

		var re *fault.RemoteError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusServiceUnavailable, re.StatusCode)
	})
}
