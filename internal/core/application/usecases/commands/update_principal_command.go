package commands

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/pkg/guard"
)

var ErrUpdatePrincipalCommandIsNotConstructed = errors.New(
	"UpdatePrincipalCommand must be created via NewUpdatePrincipalCommand constructor",
)

// UpdatePrincipalCommand changes an existing user's role or stage, and
// optionally the secret. An empty secret keeps the current one.
type UpdatePrincipalCommand struct { //nolint:recvcheck //using for validation
	actor     principal.Principal
	principal principal.Principal
	secret    string

	guard guard.ConstructorGuard
}

func NewUpdatePrincipalCommand(
	actor principal.Principal,
	username, role, stageName, secret string,
) (UpdatePrincipalCommand, error) {
	p, parseErr := parsePrincipal(username, role, stageName)
	if err := errors.Join(requireActor(actor), parseErr); err != nil {
		return UpdatePrincipalCommand{}, err
	}

	return UpdatePrincipalCommand{
		actor:     actor,
		principal: p,
		secret:    secret,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePrincipalCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePrincipalCommandIsNotConstructed)
}

func (c UpdatePrincipalCommand) Actor() principal.Principal     { return c.actor }
func (c UpdatePrincipalCommand) Principal() principal.Principal { return c.principal }
func (c UpdatePrincipalCommand) Secret() string                 { return c.secret }
