package order_test

import (
	"fmt"
	"testing"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Paid))
	assert.Equal(t, 3, int(order.Cancelled))
	assert.Equal(t, 4, int(order.Delivered))
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Paid, order.Cancelled, order.Delivered} {
		t.Run(fmt.Sprintf("should validate %s status", s), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		require.Error(t, order.Status(99).Validate())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Paid, order.Cancelled, order.Delivered} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("unknown")
	require.Error(t, err)
	_, err = order.ParseStatus("refunded")
	require.Error(t, err)
}

func TestStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    order.Status
		action  func(order.Status) (order.Status, error)
		to      order.Status
		allowed bool
	}{
		{"pending to paid", order.Pending, order.Status.Pay, order.Paid, true},
		{"paid to paid", order.Paid, order.Status.Pay, order.Paid, true},
		{"cancelled to paid", order.Cancelled, order.Status.Pay, order.Unknown, false},
		{"pending to cancelled", order.Pending, order.Status.Cancel, order.Cancelled, true},
		{"paid to cancelled", order.Paid, order.Status.Cancel, order.Cancelled, true},
		{"delivered to cancelled", order.Delivered, order.Status.Cancel, order.Unknown, false},
		{"paid to delivered", order.Paid, order.Status.Deliver, order.Delivered, true},
		{"pending to delivered", order.Pending, order.Status.Deliver, order.Unknown, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.action(tc.from)

			if tc.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
			assert.Equal(t, tc.to, got)
		})
	}
}
