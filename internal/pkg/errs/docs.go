// Package errs provides the standard error types shared by the checkout
// service. Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsRequired,
// ...) with a struct carrying the offending parameter and an optional cause,
// so callers can branch with errors.Is while logs keep the detail.
//
// The package includes:
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//   - ObjectAlreadyExistsError: a write collided with a unique key
//   - ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError:
//     constructor and command validation failures
//
// Each type has a plain constructor and a ...WithCause variant, and Unwrap
// returns the sentinel.
package errs
