package checkout_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/checkout"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	const (
		idle      = 30 * time.Minute
		retention = 2 * time.Hour
	)

	t.Run("open session expires after the idle ttl", func(t *testing.T) {
		s := newSession(t, true)

		assert.False(t, s.Expired(s.UpdatedAt.Add(idle), idle, retention))
		assert.True(t, s.Expired(s.UpdatedAt.Add(idle+time.Second), idle, retention))
	})

	t.Run("payment in flight never expires", func(t *testing.T) {
		s := apply(t, atPayment(t), checkout.PaymentStarted{})

		assert.False(t, s.Expired(s.UpdatedAt.Add(24*time.Hour), idle, retention))
	})

	t.Run("charged without an order never expires", func(t *testing.T) {
		s := apply(t, atPayment(t), checkout.PaymentStarted{}, checkout.PaymentFinalizing{Message: "contact support"})

		assert.False(t, s.Expired(s.UpdatedAt.Add(24*time.Hour), idle, retention))
	})

	t.Run("failed payment is an open session again", func(t *testing.T) {
		s := apply(t, atPayment(t), checkout.PaymentStarted{}, checkout.PaymentCancelled{})

		assert.True(t, s.Expired(s.UpdatedAt.Add(idle+time.Minute), idle, retention))
	})
}
