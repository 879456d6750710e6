package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// RemovePrincipalCommandHandler deletes directory entries. A principal cannot
// remove itself, so the directory always keeps the account in use.
type RemovePrincipalCommandHandler struct {
	directory ports.Directory
	policy    services.AccessPolicy
}

func NewRemovePrincipalCommandHandler(directory ports.Directory, policy services.AccessPolicy) RemovePrincipalCommandHandler {
	return RemovePrincipalCommandHandler{directory: directory, policy: policy}
}

func (h *RemovePrincipalCommandHandler) Handle(ctx context.Context, cmd RemovePrincipalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.policy.CanManageDirectory(cmd.Actor()) {
		return services.ErrUnauthorized
	}

	if cmd.Actor().Username() == cmd.Username() {
		return errs.NewValueIsInvalidErrorWithCause("username", errors.New("cannot remove the signed in principal"))
	}

	return h.directory.RemovePrincipal(ctx, cmd.Username())
}
