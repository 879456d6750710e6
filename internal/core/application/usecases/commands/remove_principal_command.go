package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/principal"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRemovePrincipalCommandIsNotConstructed = errors.New(
	"RemovePrincipalCommand must be created via NewRemovePrincipalCommand constructor",
)

// RemovePrincipalCommand deletes a user from the directory.
type RemovePrincipalCommand struct { //nolint:recvcheck //using for validation
	actor    principal.Principal
	username string

	guard guard.ConstructorGuard
}

func NewRemovePrincipalCommand(actor principal.Principal, username string) (RemovePrincipalCommand, error) {
	username = strings.TrimSpace(username)

	var usernameErr error
	if username == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}
	if err := errors.Join(requireActor(actor), usernameErr); err != nil {
		return RemovePrincipalCommand{}, err
	}

	return RemovePrincipalCommand{actor: actor, username: username, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemovePrincipalCommand) Validate() error {
	return c.guard.Validate(ErrRemovePrincipalCommandIsNotConstructed)
}

func (c RemovePrincipalCommand) Actor() principal.Principal { return c.actor }
func (c RemovePrincipalCommand) Username() string           { return c.username }
