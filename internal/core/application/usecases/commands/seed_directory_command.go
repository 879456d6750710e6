package commands

import (
	"errors"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrSeedDirectoryCommandIsNotConstructed = errors.New(
	"SeedDirectoryCommand must be created via NewSeedDirectoryCommand constructor",
)

// SeedDirectoryCommand creates the first coordinator of an empty directory.
type SeedDirectoryCommand struct { //nolint:recvcheck //using for validation
	username string
	secret   string

	guard guard.ConstructorGuard
}

func NewSeedDirectoryCommand(username, secret string) (SeedDirectoryCommand, error) {
	username = strings.TrimSpace(username)

	var problems []error
	if username == "" {
		problems = append(problems, errs.NewValueIsRequiredError("username"))
	}
	if secret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("secret"))
	}
	if err := errors.Join(problems...); err != nil {
		return SeedDirectoryCommand{}, err
	}

	return SeedDirectoryCommand{username: username, secret: secret, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedDirectoryCommand) Validate() error {
	return c.guard.Validate(ErrSeedDirectoryCommandIsNotConstructed)
}

func (c SeedDirectoryCommand) Username() string { return c.username }
func (c SeedDirectoryCommand) Secret() string   { return c.secret }
