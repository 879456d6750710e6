package commands

import (
	"context"

	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// UpdatePrincipalCommandHandler replaces an existing directory entry.
type UpdatePrincipalCommandHandler struct {
	directory ports.Directory
	catalog   stage.Catalog
	policy    services.AccessPolicy
}

func NewUpdatePrincipalCommandHandler(
	directory ports.Directory,
	catalog stage.Catalog,
	policy services.AccessPolicy,
) UpdatePrincipalCommandHandler {
	return UpdatePrincipalCommandHandler{directory: directory, catalog: catalog, policy: policy}
}

// Handle returns errs.ErrObjectNotFound for unknown usernames.
func (h *UpdatePrincipalCommandHandler) Handle(ctx context.Context, cmd UpdatePrincipalCommand) error {
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

	if _, err := h.directory.Get(ctx, p.Username()); err != nil {
		return err
	}

	return h.directory.UpsertPrincipal(ctx, p, cmd.Secret())
}
