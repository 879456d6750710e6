package commands

import (
	"context"

	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// RegisterPrincipalCommandHandler creates directory entries. Only principals
// allowed to manage the directory may use it, and usernames must be unused.
type RegisterPrincipalCommandHandler struct {
	directory ports.Directory
	catalog   stage.Catalog
	policy    services.AccessPolicy
}

func NewRegisterPrincipalCommandHandler(
	directory ports.Directory,
	catalog stage.Catalog,
	policy services.AccessPolicy,
) RegisterPrincipalCommandHandler {
	return RegisterPrincipalCommandHandler{directory: directory, catalog: catalog, policy: policy}
}

func (h *RegisterPrincipalCommandHandler) Handle(ctx context.Context, cmd RegisterPrincipalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.policy.CanManageDirectory(cmd.Actor()) {
		return services.ErrUnauthorized
	}

	p := cmd.Principal()
	if err := p.ValidateAgainst(h.catalog); err != nil {
		return err
	}

	return h.directory.CreatePrincipal(ctx, p, cmd.Secret())
}
