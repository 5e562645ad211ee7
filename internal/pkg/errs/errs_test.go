package errs_test

import (
	"errors"
	"testing"

	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("itemId", "a1b2")

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "a1b2", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: a1b2", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("itemId", "a1b2", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: itemId, ID is: a1b2 (cause: connection reset)",
			err.Error())
	})

	t.Run("non string identifiers are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("paymentReference", "chk_123")

	assert.Equal(t, "object already exists: paymentReference is chk_123", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	withCause := errs.NewObjectAlreadyExistsErrorWithCause("paymentReference", "chk_123", errors.New("23505"))
	assert.Contains(t, withCause.Error(), "(cause: 23505)")
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("price")
	assert.Equal(t, "value is invalid: price", err.Error())
	assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())

	withCause := errs.NewValueIsInvalidErrorWithCause("price", errors.New("-1 is negative"))
	assert.Equal(t, "value is invalid: price (cause: -1 is negative)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("estimatedDays", 0, 1, 60)

		assert.Equal(t, 0, err.Value)
		assert.Equal(t, "value is invalid: 0 is estimatedDays, min value is 1, max value is 60", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("values are kept on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("street", "12 Long St\nCape Town", 1, 2)
		assert.Contains(t, err.Error(), "12 Long St Cape Town")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("postalCode")
	assert.Equal(t, "value is required: postalCode", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("postalCode", errors.New("blank"))
	assert.Equal(t, "value is required: postalCode (cause: blank)", withCause.Error())
	require.ErrorIs(t, withCause, errs.ErrValueIsRequired)
}

func TestErrorsCanBeUnwrappedThroughJoin(t *testing.T) {
	joined := errors.Join(
		errs.NewValueIsRequiredError("city"),
		errs.NewValueIsInvalidError("price"),
	)

	require.ErrorIs(t, joined, errs.ErrValueIsRequired)
	require.ErrorIs(t, joined, errs.ErrValueIsInvalid)
	assert.NotErrorIs(t, joined, errs.ErrObjectNotFound)
}
