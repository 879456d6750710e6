package principal

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via its constructors")

// Principal is an authenticated identity. It is a value: reassigning an
// operator produces a new Principal.
type Principal struct {
	username      string
	role          Role
	assignedStage stage.Stage
	isConstructed bool
}

// NewCoordinator creates a coordinator.
func NewCoordinator(username string) (Principal, error) {
	return newPrincipal(username, Coordinator, "")
}

// NewPlanner creates a planner.
func NewPlanner(username string) (Principal, error) {
	return newPrincipal(username, Planner, "")
}

// NewOperator creates an operator assigned to exactly one stage.
func NewOperator(username string, assigned stage.Stage) (Principal, error) {
	return newPrincipal(username, Operator, assigned)
}

// New builds a principal from a role and optional stage, e.g. when reading
// from the directory. Non-operators must not carry a stage.
func New(username string, role Role, assigned stage.Stage) (Principal, error) {
	return newPrincipal(username, role, assigned)
}

func newPrincipal(username string, role Role, assigned stage.Stage) (Principal, error) {
	p := Principal{isConstructed: true}

	if err := errors.Join(
		p.setUsername(username),
		p.setRole(role, assigned),
	); err != nil {
		return Principal{}, err
	}

	return p, nil
}

// Validate ensures the principal was created through a constructor.
func (p Principal) Validate() error {
	if !p.isConstructed {
		return ErrPrincipalIsNotConstructed
	}
	return nil
}

// Username returns the login name, unique within the directory.
func (p Principal) Username() string {
	return p.username
}

// Role returns the principal's role.
func (p Principal) Role() Role {
	return p.role
}

// AssignedStage returns the operator's stage and true, or "" and false for
// other roles.
func (p Principal) AssignedStage() (stage.Stage, bool) {
	if p.role != Operator {
		return "", false
	}
	return p.assignedStage, true
}

// ValidateAgainst checks that an operator's stage belongs to the catalog.
func (p Principal) ValidateAgainst(catalog stage.Catalog) error {
	if s, ok := p.AssignedStage(); ok && !catalog.Contains(s) {
		return fmt.Errorf("%w: %q assigned to %s", stage.ErrUnknownStage, s, p.username)
	}
	return nil
}

func (p *Principal) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	p.username = username
	return nil
}

func (p *Principal) setRole(role Role, assigned stage.Stage) error {
	if err := role.Validate(); err != nil {
		return err
	}

	switch {
	case role == Operator && assigned == "":
		return errs.NewValueIsRequiredError("assigned stage")
	case role != Operator && assigned != "":
		return errs.NewValueIsInvalidErrorWithCause(
			"assigned stage",
			fmt.Errorf("%s cannot be assigned to a stage", role),
		)
	}

	p.role = role
	p.assignedStage = assigned
	return nil
}
