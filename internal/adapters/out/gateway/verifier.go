package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
)

var _ ports.TransactionVerifier = &Verifier{}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        json.RawMessage `json:"id"`
		Status    string          `json:"status"`
		Reference string          `json:"reference"`
	} `json:"data"`
}

// Verifier checks a reported transaction against the gateway's server API.
type Verifier struct {
	http *httpclient.Client
}

func NewVerifier(hc *httpclient.Client) *Verifier {
	return &Verifier{http: hc}
}

func (v *Verifier) Verify(ctx context.Context, reference payment.Reference, transactionID string) error {
	var resp verifyResponse
	path := "/transaction/verify/" + url.PathEscape(reference.String())
	if err := v.http.Do(ctx, http.MethodGet, path, nil, &resp, nil); err != nil {
		return err
	}

	if !resp.Status || resp.Data.Status != "success" {
		return fmt.Errorf("transaction %s not successful: %s %s", reference, resp.Data.Status, resp.Message)
	}
	if resp.Data.Reference != "" && resp.Data.Reference != reference.String() {
		return fmt.Errorf("transaction reference mismatch: got %s, want %s", resp.Data.Reference, reference)
	}
	if id := strings.Trim(string(resp.Data.ID), `"`); transactionID != "" && id != "" && id != transactionID {
		return fmt.Errorf("transaction id mismatch: got %s, want %s", id, transactionID)
	}
	return nil
}
