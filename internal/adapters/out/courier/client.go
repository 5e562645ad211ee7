// Package courier calls the courier aggregation service for shipping rates.
package courier

import (
	"context"
	"net/http"
	"time"

	"checkout/internal/adapters/out/httpclient"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
)

const ratesPath = "/v1/rates"

var _ ports.CourierAggregator = &Client{}

type addressDTO struct {
	StreetAddress string `json:"street_address"`
	LocalArea     string `json:"local_area,omitempty"`
	City          string `json:"city"`
	Zone          string `json:"zone"`
	Code          string `json:"code"`
	Country       string `json:"country"`
}

type parcelDTO struct {
	SubmittedWeightKg float64 `json:"submitted_weight_kg"`
}

type ratesRequest struct {
	CollectionAddress addressDTO  `json:"collection_address"`
	DeliveryAddress   addressDTO  `json:"delivery_address"`
	Parcels           []parcelDTO `json:"parcels"`
}

type rateDTO struct {
	Rate             decimal.Decimal  `json:"rate"`
	RateExclVAT      *decimal.Decimal `json:"rate_excluding_vat"`
	CollectionCutoff *time.Time       `json:"collection_cutoff"`
	ServiceLevel     struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		TransitDays int    `json:"transit_days"`
	} `json:"service_level"`
	Provider struct {
		Name      string `json:"name"`
		Reference string `json:"reference"`
	} `json:"provider"`
}

type ratesResponse struct {
	Rates []rateDTO `json:"rates"`
}

// Client is a ports.CourierAggregator over HTTP.
type Client struct {
	http *httpclient.Client
}

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// Quotes requests rates for one parcel. Rates are returned unfiltered;
// validation happens in the quote aggregator.
func (c *Client) Quotes(ctx context.Context, request ports.QuoteRequest) ([]ports.RawQuote, error) {
	body := ratesRequest{
		CollectionAddress: toAddressDTO(request.From),
		DeliveryAddress:   toAddressDTO(request.To),
		Parcels:           []parcelDTO{{SubmittedWeightKg: request.WeightKg}},
	}

	var resp ratesResponse
	if err := c.http.Do(ctx, http.MethodPost, ratesPath, body, &resp, nil); err != nil {
		return nil, err
	}

	quotes := make([]ports.RawQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		quotes = append(quotes, ports.RawQuote{
			CourierID:        r.ServiceLevel.Code,
			ServiceName:      r.ServiceLevel.Name,
			ProviderName:     r.Provider.Name,
			ProviderRef:      r.Provider.Reference,
			Cost:             r.Rate,
			TransitDays:      r.ServiceLevel.TransitDays,
			PriceExclVAT:     r.RateExclVAT,
			CollectionCutoff: r.CollectionCutoff,
		})
	}
	return quotes, nil
}

func toAddressDTO(a kernel.Address) addressDTO {
	country := a.Country()
	if country == "" {
		country = "ZA"
	}
	return addressDTO{
		StreetAddress: a.Street(),
		LocalArea:     a.AdditionalInfo(),
		City:          a.City(),
		Zone:          a.Province(),
		Code:          a.PostalCode(),
		Country:       country,
	}
}
