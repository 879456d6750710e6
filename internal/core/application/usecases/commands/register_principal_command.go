package commands

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrRegisterPrincipalCommandIsNotConstructed = errors.New(
		"RegisterPrincipalCommand must be created via NewRegisterPrincipalCommand constructor",
	)

	// ErrPrincipalAlreadyExists is returned when registering a taken username.
	ErrPrincipalAlreadyExists = ports.ErrPrincipalAlreadyExists
)

// RegisterPrincipalCommand adds a new user to the directory.
type RegisterPrincipalCommand struct { //nolint:recvcheck //using for validation
	actor     principal.Principal
	principal principal.Principal
	secret    string

	guard guard.ConstructorGuard
}

// NewRegisterPrincipalCommand validates the new user's fields. Operators need
// a stage name, other roles must leave it empty.
func NewRegisterPrincipalCommand(
	actor principal.Principal,
	username, role, stageName, secret string,
) (RegisterPrincipalCommand, error) {
	cmd := RegisterPrincipalCommand{guard: guard.NewConstructorGuard()}

	p, parseErr := parsePrincipal(username, role, stageName)
	var secretErr error
	if secret == "" {
		secretErr = errs.NewValueIsRequiredError("secret")
	}

	if err := errors.Join(requireActor(actor), parseErr, secretErr); err != nil {
		return RegisterPrincipalCommand{}, err
	}

	cmd.actor = actor
	cmd.principal = p
	cmd.secret = secret
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPrincipalCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPrincipalCommandIsNotConstructed)
}

func (c RegisterPrincipalCommand) Actor() principal.Principal     { return c.actor }
func (c RegisterPrincipalCommand) Principal() principal.Principal { return c.principal }
func (c RegisterPrincipalCommand) Secret() string                 { return c.secret }
