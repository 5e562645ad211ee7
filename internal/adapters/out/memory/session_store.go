// Package memory keeps live checkout sessions in process memory. Sessions
// are transient: they hold no money and no order, and are dropped on restart
// or by the session expiry job.
package memory

import (
	"context"
	"sync"

	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

var _ ports.SessionStore = &SessionStore{}

// SessionStore is a ports.SessionStore guarded by one mutex. Update holds
// the lock while fn runs, so changes to a session are applied one at a time.
//
// Sessions are stored by value. Callers receive copies, and the only way to
// change a stored session is Update, which the orchestrator pairs with
// checkout.Transition:
//
//	session, err := store.Update(ctx, id, func(s checkout.Session) (checkout.Session, error) {
//	    return checkout.Transition(s, checkout.PaymentStarted{})
//	})
//	if err != nil {
//	    // the stored session is unchanged; session holds its current value
//	}
//
// fn must not call back into the store or make remote calls: it runs under
// the store lock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[kernel.UUID]checkout.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[kernel.UUID]checkout.Session)}
}

// Create stores a new session. It returns errs.ObjectAlreadyExistsError if
// the ID is taken and the ID's validation error if it is the zero UUID.
func (s *SessionStore) Create(ctx context.Context, session checkout.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := session.ID.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return errs.NewObjectAlreadyExistsError("session", session.ID.String())
	}
	s.sessions[session.ID] = session
	return nil
}

// Get returns a copy of the session, or errs.ObjectNotFoundError.
func (s *SessionStore) Get(ctx context.Context, id kernel.UUID) (checkout.Session, error) {
	if err := ctx.Err(); err != nil {
		return checkout.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return checkout.Session{}, errs.NewObjectNotFoundError("session", id.String())
	}
	return session, nil
}

// Update replaces the session with fn's result. When fn fails, the stored
// session is left unchanged and returned along with fn's error. The session
// ID cannot be changed by fn.
//
// A missing session returns errs.ObjectNotFoundError without calling fn.
func (s *SessionStore) Update(
	ctx context.Context,
	id kernel.UUID,
	fn func(checkout.Session) (checkout.Session, error),
) (checkout.Session, error) {
	if err := ctx.Err(); err != nil {
		return checkout.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return checkout.Session{}, errs.NewObjectNotFoundError("session", id.String())
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	next.ID = current.ID
	s.sessions[id] = next
	return next, nil
}

// Delete removes the session, or returns errs.ObjectNotFoundError.
func (s *SessionStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errs.NewObjectNotFoundError("session", id.String())
	}
	delete(s.sessions, id)
	return nil
}

// Sweep removes every session for which expired returns true and reports
// how many were removed. expired runs under the store lock, once per
// session, so it sees a consistent snapshot:
//
//	removed, err := store.Sweep(ctx, func(s checkout.Session) bool {
//	    return s.Expired(now, idleTTL, retention)
//	})
func (s *SessionStore) Sweep(ctx context.Context, expired func(checkout.Session) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
