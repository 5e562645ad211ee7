package ports

import (
	"context"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
)

// SessionStore owns live checkout sessions. Update serialises changes to a
// session; fn must not block on I/O.
type SessionStore interface {
	Create(ctx context.Context, session checkout.Session) error

	// Get returns errs.ObjectNotFoundError for unknown or expired sessions.
	Get(ctx context.Context, id kernel.UUID) (checkout.Session, error)

	// Update applies fn to the stored session and stores its result. When fn
	// fails nothing is stored and the error is returned.
	Update(ctx context.Context, id kernel.UUID, fn func(checkout.Session) (checkout.Session, error)) (checkout.Session, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// Sweep deletes every session for which expired returns true and
	// reports how many were removed.
	Sweep(ctx context.Context, expired func(checkout.Session) bool) (int, error)
}
