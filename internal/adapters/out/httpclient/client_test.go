package httpclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/core/domain/model/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "chk_1", r.Header.Get("Idempotency-Key"))
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
		case "/json-error":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":{"message":"amount must be positive"}}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down\n"))
		}
	}))
	defer srv.Close()

	c, err := httpclient.New(httpclient.Config{Service: "orders", BaseURL: srv.URL + "/", APIKey: "secret"})
	require.NoError(t, err)

	t.Run("decodes a 2xx answer", func(t *testing.T) {
		var out struct{ Echo string }
		err := c.Do(t.Context(), http.MethodPost, "/ok", map[string]string{"name": "lamp"}, &out,
			map[string]string{"Idempotency-Key": "chk_1"})

		require.NoError(t, err)
		assert.Equal(t, "lamp", out.Echo)
	})

	t.Run("json error body is kept decoded", func(t *testing.T) {
		err := c.Do(t.Context(), http.MethodPost, "/json-error", struct{}{}, nil, nil)

		var re *fault.RemoteError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, http.StatusUnprocessableEntity, re.StatusCode)
		assert.Equal(t, "orders", re.Service)
		payload, ok := re.Payload.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, payload, "error")
	})

	t.Run("text error body is kept as text", func(t *testing.T) {
		err := c.Do(t.Context(), http.MethodGet, "/down", nil, nil, nil)

		var re *fault.RemoteError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "upstream down", re.Payload)
	})
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := httpclient.New(httpclient.Config{Service: "courier"})
	require.ErrorIs(t, err, httpclient.ErrBaseURLIsRequired)
}
