package payment_test

import (
	"strings"
	"testing"

	"checkout/internal/core/domain/model/payment"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	a := payment.NewReference()
	b := payment.NewReference()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a.String(), "chk_"))

	_, err := payment.ParseReference("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAttempt_Lifecycle(t *testing.T) {
	ref := payment.NewReference()

	t.Run("idle to succeeded", func(t *testing.T) {
		a, err := payment.NewAttempt(ref).Begin()
		require.NoError(t, err)
		assert.True(t, a.InFlight())

		a, err = a.Succeed()
		require.NoError(t, err)
		assert.True(t, a.Charged())
		assert.Equal(t, ref, a.Reference)
	})

	t.Run("second begin while processing is rejected", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()

		_, err := a.Begin()

		require.ErrorIs(t, err, payment.ErrCaptureInFlight)
	})

	t.Run("no new capture after success", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()
		a, _ = a.Succeed()

		_, err := a.Begin()

		require.ErrorIs(t, err, payment.ErrAlreadyCharged)
	})

	t.Run("retry after failure keeps the reference", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()
		a, err := a.Fail()
		require.NoError(t, err)

		a, err = a.Begin()

		require.NoError(t, err)
		assert.Equal(t, payment.Processing, a.Status)
		assert.Equal(t, ref, a.Reference)
	})

	t.Run("cancel from processing then retry", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()
		a, err := a.Cancel()
		require.NoError(t, err)
		assert.Equal(t, payment.Cancelled, a.Status)

		_, err = a.Begin()
		require.NoError(t, err)
	})

	t.Run("cannot cancel after charge", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()
		a, _ = a.Succeed()

		_, err := a.Cancel()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("late success after a failure is recorded", func(t *testing.T) {
		a, _ := payment.NewAttempt(ref).Begin()
		a, _ = a.Fail()

		a, err := a.Succeed()

		require.NoError(t, err)
		assert.True(t, a.Charged())
	})

	t.Run("cannot succeed from idle", func(t *testing.T) {
		_, err := payment.NewAttempt(ref).Succeed()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("cannot fail from idle", func(t *testing.T) {
		_, err := payment.NewAttempt(ref).Fail()
		require.Error(t, err)
	})

	t.Run("begin requires a reference", func(t *testing.T) {
		_, err := payment.NewAttempt("").Begin()
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGatewayResult(t *testing.T) {
	ref := payment.NewReference()

	assert.Equal(t, payment.OutcomeSuccess, payment.SuccessResult(ref, "success", "T1").Outcome)
	assert.Equal(t, "error", payment.ErrorResult(ref, "declined").Outcome.String())
	assert.Equal(t, payment.OutcomeClosed, payment.ClosedResult(ref).Outcome)
}
