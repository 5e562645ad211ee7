// Package order provides the purchase side of checkout: the summary a buyer
// pays for, the payload both order creation paths share, the persisted
// Order aggregate and the immutable Confirmation.
//
// The package includes:
//   - Summary: item, delivery and addresses with a total that is always
//     ItemPrice + DeliveryPrice
//   - Payload: built only by BuildPayload, so the remote and fallback
//     creation paths map fields identically
//   - Order: the aggregate root, unique per payment reference
//   - Status: Pending -> Paid -> Delivered, with cancellation from Pending or Paid
//   - Confirmation: proof of a committed order
package order
