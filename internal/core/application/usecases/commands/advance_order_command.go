package commands

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/principal"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand asks to move an order out of its current stage at a
// given time.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	actor   principal.Principal
	orderID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates an advance request.
func NewAdvanceOrderCommand(actor principal.Principal, orderID kernel.UUID, at time.Time) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setAt(at),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) Actor() principal.Principal { return c.actor }
func (c AdvanceOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c AdvanceOrderCommand) At() time.Time              { return c.at }

func (c *AdvanceOrderCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	c.at = at
	return nil
}
