package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ReconcileOrdersCommand re-derives every active order's completed quantities and
// statuses from the recorded items.
//
// Example:
//
//	cmd := NewReconcileOrdersCommand()
//	repaired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    logger.Error("reconciliation failed", "error", err)
//	}
type ReconcileOrdersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrReconcileOrdersCommandIsNotConstructed = errors.New(
		"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
	)
)

// NewReconcileOrdersCommand creates a parameterless command covering all active orders.
func NewReconcileOrdersCommand() ReconcileOrdersCommand {
	return ReconcileOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}
