package commands

import (
	"strings"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

// parsePrincipal builds a principal from request fields. An empty stage name
// means "no stage".
func parsePrincipal(username, roleName, stageName string) (principal.Principal, error) {
	role, err := principal.ParseRole(roleName)
	if err != nil {
		return principal.Principal{}, err
	}
	return principal.New(username, role, stage.Stage(strings.TrimSpace(stageName)))
}

func requireActor(actor principal.Principal) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}
