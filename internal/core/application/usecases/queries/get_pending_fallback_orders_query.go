package queries

import (
	"errors"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrGetPendingFallbackOrdersQueryIsNotConstructed = errors.New(
	"GetPendingFallbackOrdersQuery must be created via NewGetPendingFallbackOrdersQuery constructor",
)

// GetPendingFallbackOrdersQuery lists fallback orders still waiting for
// their encrypted shipping address, oldest first.
type GetPendingFallbackOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetPendingFallbackOrdersQuery creates the query. limit must be in [1, 500].
func NewGetPendingFallbackOrdersQuery(limit int) (GetPendingFallbackOrdersQuery, error) {
	if limit < 1 || limit > 500 {
		return GetPendingFallbackOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 500)
	}
	return GetPendingFallbackOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingFallbackOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingFallbackOrdersQueryIsNotConstructed)
}

func (q GetPendingFallbackOrdersQuery) Limit() int {
	return q.limit
}
