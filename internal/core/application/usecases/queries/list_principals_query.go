package queries

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrListPrincipalsQueryIsNotConstructed = errors.New(
	"ListPrincipalsQuery must be created via NewListPrincipalsQuery constructor",
)

// ListPrincipalsQuery lists directory entries. An empty role or stage name
// disables that filter.
type ListPrincipalsQuery struct {
	viewer principal.Principal
	role   principal.Role
	stage  stage.Stage
	guard  guard.ConstructorGuard
}

func NewListPrincipalsQuery(viewer principal.Principal, roleName, stageName string) (ListPrincipalsQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListPrincipalsQuery{}, err
	}

	q := ListPrincipalsQuery{
		viewer: viewer,
		stage:  stage.Stage(strings.TrimSpace(stageName)),
		guard:  guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(roleName) != "" {
		role, err := principal.ParseRole(roleName)
		if err != nil {
			return ListPrincipalsQuery{}, err
		}
		q.role = role
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListPrincipalsQuery) Validate() error {
	return q.guard.Validate(ErrListPrincipalsQueryIsNotConstructed)
}

func (q ListPrincipalsQuery) Viewer() principal.Principal { return q.viewer }

// Matches applies the role and stage filters.
func (q ListPrincipalsQuery) Matches(p principal.Principal) bool {
	if q.role != principal.UnknownRole && p.Role() != q.role {
		return false
	}
	if q.stage != "" {
		s, ok := p.AssignedStage()
		if !ok || s != q.stage {
			return false
		}
	}
	return true
}

// PrincipalResponse is a directory entry without its secret.
type PrincipalResponse struct {
	Username string
	Role     principal.Role
	Stage    stage.Stage
}
