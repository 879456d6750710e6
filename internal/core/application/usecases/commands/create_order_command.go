package commands

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/principal"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new work order on the
// first stage of its plan.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, "OP-1042", "Acme",
//	    []string{"Queued", "Die-cutting", "Transport"}, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor     principal.Principal
	orderID   kernel.UUID
	number    string
	client    string
	plan      []string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Plan names are checked
// against the stage catalog by the handler.
func NewCreateOrderCommand(
	actor principal.Principal,
	orderID kernel.UUID,
	number, client string,
	plan []string,
	createdAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setClient(client),
		cmd.setPlan(plan),
		cmd.setCreatedAt(createdAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() principal.Principal { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c CreateOrderCommand) Number() string             { return c.number }
func (c CreateOrderCommand) Client() string             { return c.client }
func (c CreateOrderCommand) CreatedAt() time.Time       { return c.createdAt }

// Plan returns a copy of the requested stage names.
func (c CreateOrderCommand) Plan() []string {
	return append([]string(nil), c.plan...)
}

func (c *CreateOrderCommand) setActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	c.number = number
	return nil
}

func (c *CreateOrderCommand) setClient(client string) error {
	client = strings.TrimSpace(client)
	if client == "" {
		return errs.NewValueIsRequiredError("client")
	}
	c.client = client
	return nil
}

func (c *CreateOrderCommand) setPlan(plan []string) error {
	if len(plan) == 0 {
		return errs.NewValueIsRequiredError("plan")
	}
	c.plan = append([]string(nil), plan...)
	return nil
}

func (c *CreateOrderCommand) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	c.createdAt = createdAt
	return nil
}
