// Package kernel provides the value objects shared by every checkout model.
//
// The package includes:
//   - UUID: identifiers for users, items, orders and sessions
//   - Money: exact, non-negative amounts backed by shopspring/decimal
//   - Address: a postal address that is complete by construction
//
// All three are immutable and guard against zero-value use through Validate.
package kernel
