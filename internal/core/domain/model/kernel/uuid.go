package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// Validate returns it for the zero value, so a session, item or order built
// with a forgotten identifier fails before it reaches a store or a remote call.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies buyers, sellers, items, orders and checkout sessions.
// It wraps github.com/google/uuid so that domain code never handles the nil
// UUID: the zero value is invalid, and every constructor rejects uuid.Nil.
//
// UUID is a comparable value. It can key maps (the in-memory session store
// and the cart size view do) and is safe to share between goroutines.
//
// Identifiers arrive from three places, each with its own constructor:
//   - new aggregates and sessions use NewUUID
//   - HTTP path parameters and remote payloads use UUIDFromString
//   - postgres rows are mapped through UUIDFromBytes or the uuid.UUID column
//
// Example usage:
//
//	// A new checkout session
//	sessionID := kernel.NewUUID()
//
//	// An item id taken from the request path
//	itemID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return fmt.Errorf("invalid item ID: %w", err)
//	}
//
//	// Ownership checks compare values
//	if item.SellerID().IsEqual(buyerID) {
//	    return orchestrator.ErrOwnItem
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). The result is always
// valid.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	logger.Info("Order created", "order_id", orderID.String())
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. Any form
// accepted by uuid.Parse works, braces and the urn:uuid: prefix included.
// The nil UUID "00000000-0000-0000-0000-000000000000" parses but is rejected
// with ErrUUIDIsNotConstructed.
//
// Example:
//
//	buyerID, err := kernel.UUIDFromString(ctx.Param("userId"))
//	if err != nil {
//	    return badRequest(ctx, err.Error())
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice, as stored by the
// postgres adapters. A slice of any other length is an error, and so are
// sixteen zero bytes.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality. Two zero values are equal; call
// Validate first when that matters.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID. Constructors of
// commands, queries and sessions join it with their other checks:
//
//	if err := errors.Join(itemID.Validate(), userID.Validate()); err != nil {
//	    return checkout.Session{}, err
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
