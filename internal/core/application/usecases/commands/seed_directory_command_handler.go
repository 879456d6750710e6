package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/ports"
)

// SeedDirectoryCommandHandler makes sure somebody can log in after the first
// start. A directory that already has principals is left alone.
type SeedDirectoryCommandHandler struct {
	directory ports.Directory
}

func NewSeedDirectoryCommandHandler(directory ports.Directory) SeedDirectoryCommandHandler {
	return SeedDirectoryCommandHandler{directory: directory}
}

// Handle reports whether a coordinator was created.
func (h *SeedDirectoryCommandHandler) Handle(ctx context.Context, cmd SeedDirectoryCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	existing, err := h.directory.ListPrincipals(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	coordinator, err := principal.NewCoordinator(cmd.Username())
	if err != nil {
		return false, err
	}

	err = h.directory.CreatePrincipal(ctx, coordinator, cmd.Secret())
	if errors.Is(err, ports.ErrPrincipalAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
