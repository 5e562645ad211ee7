package quoting_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"checkout/internal/core/application/quoting"
	"checkout/internal/core/domain/model/delivery"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCourierAggregator struct{ mock.Mock }

func (m *MockCourierAggregator) Quotes(ctx context.Context, req ports.QuoteRequest) ([]ports.RawQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RawQuote), args.Error(1)
}

func address(t *testing.T, city, province string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{Street: "1 Main Road", City: city, Province: province, PostalCode: "0001"})
	require.NoError(t, err)
	return a
}

func newAggregator(t *testing.T, client ports.CourierAggregator) *quoting.Aggregator {
	fee, err := kernel.MoneyFromString("120.00")
	require.NoError(t, err)
	return quoting.NewAggregator(client, quoting.FlatRate{Price: fee, EstimatedDays: 4}, time.Second, slog.New(slog.DiscardHandler))
}

func raw(provider, service, cost string, days int) ports.RawQuote {
	return ports.RawQuote{ProviderName: provider, ServiceName: service, Cost: decimal.RequireFromString(cost), TransitDays: days}
}

func TestAggregator_GetQuotes(t *testing.T) {
	ctx := t.Context()
	seller := address(t, "Cape Town", "Western Cape")
	buyer := address(t, "Johannesburg", "Gauteng")

	t.Run("maps quotes and classifies the zone", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, ports.QuoteRequest{From: seller, To: buyer, WeightKg: 2}).
			Return([]ports.RawQuote{raw("The Courier Guy", "Economy", "95.00", 3)}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		require.Len(t, q.Options, 1)
		assert.Empty(t, q.Warning)
		assert.False(t, q.IsEstimate())
		opt := q.Options[0]
		assert.Equal(t, "the-courier-guy-economy", opt.ID)
		assert.Equal(t, "95.00", opt.Price.String())
		assert.Equal(t, delivery.National, opt.Zone)
		assert.False(t, opt.Estimate)
	})

	t.Run("aggregator error yields the flat-rate estimate", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return(nil, errors.New("502 bad gateway")).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		require.Len(t, q.Options, 1)
		assert.True(t, q.IsEstimate())
		assert.True(t, q.Options[0].Estimate)
		assert.Equal(t, "120.00", q.Options[0].Price.String())
		assert.Equal(t, 4, q.Options[0].EstimatedDays)
		assert.NotEmpty(t, q.Warning)
		require.NoError(t, q.Options[0].Validate())
	})

	t.Run("empty answer yields the flat-rate estimate", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return([]ports.RawQuote{}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		assert.True(t, q.IsEstimate())
		assert.NotEmpty(t, q.Warning)
	})

	t.Run("only unusable quotes yields the estimate", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).
			Return([]ports.RawQuote{raw("X", "", "10", 1), raw("Y", "Express", "-5", 1), raw("Z", "Slow", "10", -2)}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		assert.True(t, q.IsEstimate())
	})

	t.Run("groups by provider without ranking", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return([]ports.RawQuote{
			raw("Pargo", "Standard", "60", 5),
			raw("TCG", "Overnight", "180", 1),
			raw("Pargo", "Express", "150", 2),
			raw("TCG", "Economy", "90", 4),
		}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		names := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			names = append(names, o.ProviderName+" "+o.ServiceName)
		}
		assert.Equal(t, []string{"Pargo Standard", "Pargo Express", "TCG Overnight", "TCG Economy"}, names)
	})

	t.Run("duplicate ids are made unique", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return([]ports.RawQuote{
			raw("Pargo", "Standard", "60", 5),
			raw("Pargo", "Standard", "65", 5),
		}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		require.Len(t, q.Options, 2)
		assert.NotEqual(t, q.Options[0].ID, q.Options[1].ID)
	})

	t.Run("suffixed ids never collide with courier ids", func(t *testing.T) {
		withID := func(id, cost string) ports.RawQuote {
			q := raw("TCG", "Economy", cost, 3)
			q.CourierID = id
			return q
		}
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return([]ports.RawQuote{
			withID("tcg", "90"), withID("tcg", "95"), withID("tcg-2", "99"), withID("tcg", "101"),
		}, nil).Once()

		q := newAggregator(t, client).GetQuotes(ctx, seller, buyer, 2)

		require.Len(t, q.Options, 4)
		ids := make(map[string]string, len(q.Options))
		for _, o := range q.Options {
			ids[o.ID] = o.Price.String()
		}
		assert.Equal(t, map[string]string{"tcg": "90.00", "tcg-2": "95.00", "tcg-2-2": "99.00", "tcg-3": "101.00"}, ids)
		for id, price := range ids {
			found, ok := delivery.Find(q.Options, id)
			require.True(t, ok)
			assert.Equal(t, price, found.Price.String())
		}
	})

	t.Run("same city is local", func(t *testing.T) {
		client := new(MockCourierAggregator)
		client.On("Quotes", mock.Anything, mock.Anything).Return([]ports.RawQuote{raw("TCG", "Economy", "60", 0)}, nil).Once()
		other := address(t, "Cape Town", "Western Cape")

		q := newAggregator(t, client).GetQuotes(ctx, seller, other, 2)

		assert.Equal(t, delivery.Local, q.Options[0].Zone)
		assert.Equal(t, 1, q.Options[0].EstimatedDays)
	})
}
