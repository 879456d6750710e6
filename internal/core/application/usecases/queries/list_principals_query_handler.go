package queries

import (
	"context"

	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// ListPrincipalsQueryHandler lists the directory for its administrators.
type ListPrincipalsQueryHandler struct {
	directory ports.Directory
	policy    services.AccessPolicy
}

func NewListPrincipalsQueryHandler(directory ports.Directory, policy services.AccessPolicy) ListPrincipalsQueryHandler {
	return ListPrincipalsQueryHandler{directory: directory, policy: policy}
}

func (h ListPrincipalsQueryHandler) Handle(ctx context.Context, query ListPrincipalsQuery) ([]PrincipalResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !h.policy.CanManageDirectory(query.Viewer()) {
		return nil, services.ErrUnauthorized
	}

	all, err := h.directory.ListPrincipals(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]PrincipalResponse, 0, len(all))
	for _, p := range all {
		if !query.Matches(p) {
			continue
		}
		s, _ := p.AssignedStage()
		result = append(result, PrincipalResponse{Username: p.Username(), Role: p.Role(), Stage: s})
	}

	return result, nil
}
