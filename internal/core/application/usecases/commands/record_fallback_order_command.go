package commands

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrRecordFallbackOrderCommandIsNotConstructed = errors.New(
	"RecordFallbackOrderCommand must be created via NewRecordFallbackOrderCommand constructor",
)

// RecordFallbackOrderCommand asks for the minimal paid order to be written
// directly to the database after the remote order function failed for a
// successful charge.
//
// Example:
//
//	payload := order.BuildPayload(summary, buyerID, reference)
//	cmd, err := NewRecordFallbackOrderCommand(kernel.NewUUID(), payload, time.Now())
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type RecordFallbackOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	payload   order.Payload
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordFallbackOrderCommand validates the order identifier, the payment
// reference and the item the payload points at.
func NewRecordFallbackOrderCommand(orderID kernel.UUID, payload order.Payload, createdAt time.Time) (RecordFallbackOrderCommand, error) {
	cmd := RecordFallbackOrderCommand{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPayload(payload),
	); err != nil {
		return RecordFallbackOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordFallbackOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecordFallbackOrderCommandIsNotConstructed)
}

func (c RecordFallbackOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c RecordFallbackOrderCommand) Payload() order.Payload { return c.payload }
func (c RecordFallbackOrderCommand) CreatedAt() time.Time   { return c.createdAt }

func (c *RecordFallbackOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordFallbackOrderCommand) setPayload(payload order.Payload) error {
	if payload.PaymentReference.IsZero() {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	if err := payload.ItemID.Validate(); err != nil {
		return err
	}

	c.payload = payload
	return nil
}
