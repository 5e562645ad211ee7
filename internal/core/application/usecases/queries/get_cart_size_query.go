package queries

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"
)

var ErrGetCartSizeQueryIsNotConstructed = errors.New(
	"GetCartSizeQuery must be created via NewGetCartSizeQuery constructor",
)

// GetCartSizeQuery asks how many items are in a user's cart.
type GetCartSizeQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartSizeQuery(userID kernel.UUID) (GetCartSizeQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartSizeQuery{}, err
	}
	return GetCartSizeQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartSizeQuery) Validate() error {
	return q.guard.Validate(ErrGetCartSizeQueryIsNotConstructed)
}

func (q GetCartSizeQuery) UserID() kernel.UUID {
	return q.userID
}

// GetCartSizeQueryHandler answers from the view and falls back to the
// store for users it has not seen a change for yet.
type GetCartSizeQueryHandler struct {
	view    *CartSizeView
	counter CartCounter
}

func NewGetCartSizeQueryHandler(view *CartSizeView, counter CartCounter) GetCartSizeQueryHandler {
	return GetCartSizeQueryHandler{view: view, counter: counter}
}

func (h GetCartSizeQueryHandler) Handle(ctx context.Context, query GetCartSizeQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	if n, ok := h.view.Size(query.UserID()); ok {
		return n, nil
	}

	n, err := h.counter.Size(ctx, query.UserID())
	if err != nil {
		return 0, err
	}
	h.view.Apply(cart.Changed{UserID: query.UserID(), Size: n})
	return n, nil
}
