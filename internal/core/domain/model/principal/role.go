package principal

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Role is the tagged part of a Principal.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Coordinator
	Planner
	Operator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Coordinator: "coordinator",
		Planner:     "planner",
		Operator:    "operator",
	}
}

// String returns the lower-case role name used in storage and the API.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownRole and out of range values.
func (r Role) Validate() error {
	if r != Coordinator && r != Planner && r != Operator {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole maps a role name (case insensitive) to a Role.
func ParseRole(name string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for role, s := range getRoleStrings() {
		if role != UnknownRole && s == needle {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", name))
}
