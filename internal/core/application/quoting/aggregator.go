// Package quoting turns courier aggregator quotes into delivery options,
// falling back to a flat-rate estimate when no live quote is usable.
package quoting

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/fault"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
)

// Quotes is the result of one quote fetch. Warning is non-blocking.
type Quotes struct {
	Options []delivery.Option
	Warning string
}

// IsEstimate reports whether the only option is the flat-rate fallback.
func (q Quotes) IsEstimate() bool {
	return len(q.Options) == 1 && q.Options[0].Estimate
}

// FlatRate describes the synthetic option offered without live quotes.
type FlatRate struct {
	Price         kernel.Money
	EstimatedDays int
}

// Aggregator calls the courier aggregation service once per request and
// never fails: on error or an empty answer it returns the flat-rate
// estimate with a warning. It imposes no ranking; options are only grouped
// by provider.
type Aggregator struct {
	client   ports.CourierAggregator
	flatRate FlatRate
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAggregator creates an aggregator. A zero timeout leaves the deadline
// to the caller's context.
func NewAggregator(client ports.CourierAggregator, flatRate FlatRate, timeout time.Duration, logger *slog.Logger) *Aggregator {
	if flatRate.EstimatedDays <= 0 {
		flatRate.EstimatedDays = 5
	}
	return &Aggregator{
		client:   client,
		flatRate: flatRate,
		timeout:  timeout,
		logger:   logger.With("component", "quote_aggregator"),
	}
}

// GetQuotes returns delivery options from seller (from) to buyer (to).
func (a *Aggregator) GetQuotes(ctx context.Context, from, to kernel.Address, weightKg float64) Quotes {
	zone := delivery.ClassifyZone(from, to)

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.client.Quotes(callCtx, ports.QuoteRequest{From: from, To: to, WeightKg: weightKg})
	if err != nil {
		a.logger.WarnContext(ctx, "Courier aggregator failed, using flat rate",
			"from_city", from.City(), "to_city", to.City(), "error", err)
		return a.estimate(zone)
	}

	options := a.normalize(ctx, raw, zone)
	if len(options) == 0 {
		a.logger.WarnContext(ctx, "Courier aggregator returned no usable quotes, using flat rate",
			"from_city", from.City(), "to_city", to.City(), "raw_quotes", len(raw))
		return a.estimate(zone)
	}

	return Quotes{Options: delivery.GroupByProvider(options)}
}

func (a *Aggregator) normalize(ctx context.Context, raw []ports.RawQuote, zone delivery.Zone) []delivery.Option {
	options := make([]delivery.Option, 0, len(raw))
	used := make(map[string]bool, len(raw))

	for _, q := range raw {
		opt, err := toOption(q, zone)
		if err != nil {
			a.logger.DebugContext(ctx, "Dropping unusable quote",
				"provider", q.ProviderName, "service", q.ServiceName, "error", err)
			continue
		}
		id := opt.ID
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%d", opt.ID, n)
		}
		used[id] = true
		opt.ID = id
		options = append(options, opt)
	}
	return options
}

func toOption(q ports.RawQuote, zone delivery.Zone) (delivery.Option, error) {
	price, err := kernel.NewMoney(q.Cost)
	if err != nil {
		return delivery.Option{}, err
	}

	days := q.TransitDays
	if days == 0 {
		days = 1
	}

	courierID := strings.TrimSpace(q.CourierID)
	if courierID == "" {
		courierID = slug(q.ProviderName + " " + q.ServiceName)
	}

	opt := delivery.Option{
		ID:               courierID,
		CourierID:        courierID,
		ServiceName:      strings.TrimSpace(q.ServiceName),
		ProviderName:     strings.TrimSpace(q.ProviderName),
		Price:            price,
		EstimatedDays:    days,
		Zone:             zone,
		ProviderRef:      q.ProviderRef,
		CollectionCutoff: q.CollectionCutoff,
	}
	if q.PriceExclVAT != nil {
		if excl, exclErr := kernel.NewMoney(*q.PriceExclVAT); exclErr == nil {
			opt.PriceExclVAT = &excl
		}
	}

	if err = opt.Validate(); err != nil {
		return delivery.Option{}, err
	}
	return opt, nil
}

func (a *Aggregator) estimate(zone delivery.Zone) Quotes {
	return Quotes{
		Options: []delivery.Option{{
			ID:            delivery.FlatRateCourierID,
			CourierID:     delivery.FlatRateCourierID,
			ServiceName:   "Standard delivery (estimate)",
			ProviderName:  "Flat rate",
			Price:         a.flatRate.Price,
			EstimatedDays: a.flatRate.EstimatedDays,
			Zone:          zone,
			Estimate:      true,
		}},
		Warning: fault.QuoteServiceUnavailable.DefaultMessage(),
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
