package ports

import (
	"context"
	"time"

	"checkout/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// QuoteRequest is the normalised request sent to the courier aggregator.
type QuoteRequest struct {
	From     kernel.Address
	To       kernel.Address
	WeightKg float64
}

// RawQuote is one quote as returned by the aggregator, before validation.
type RawQuote struct {
	CourierID        string
	ServiceName      string
	ProviderName     string
	ProviderRef      string
	Cost             decimal.Decimal
	TransitDays      int
	PriceExclVAT     *decimal.Decimal
	CollectionCutoff *time.Time
}

// CourierAggregator fetches shipping quotes from many couriers in one call.
type CourierAggregator interface {
	Quotes(ctx context.Context, request QuoteRequest) ([]RawQuote, error)
}
