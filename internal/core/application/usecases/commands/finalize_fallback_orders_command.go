package commands

import (
	"errors"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var ErrFinalizeFallbackOrdersCommandIsNotConstructed = errors.New(
	"FinalizeFallbackOrdersCommand must be created via NewFinalizeFallbackOrdersCommand constructor",
)

// FinalizeFallbackOrdersCommand attaches the encrypted shipping address to
// fallback orders written without one.
//
// Example:
//
//	cmd, _ := NewFinalizeFallbackOrdersCommand(20)
//	n, err := handler.Handle(ctx, cmd)
type FinalizeFallbackOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewFinalizeFallbackOrdersCommand creates the command. batchSize bounds
// how many orders one run touches.
func NewFinalizeFallbackOrdersCommand(batchSize int) (FinalizeFallbackOrdersCommand, error) {
	if batchSize <= 0 {
		return FinalizeFallbackOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 1000)
	}
	return FinalizeFallbackOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c *FinalizeFallbackOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeFallbackOrdersCommandIsNotConstructed)
}

func (c *FinalizeFallbackOrdersCommand) BatchSize() int {
	return c.batchSize
}
