package services

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
)

// ErrUnauthorized is returned when a principal is not allowed to perform an
// operation.
var ErrUnauthorized = errors.New("unauthorized")

// Capability is an operation guarded by the access policy.
type Capability int

const (
	// AdvanceStage leaves a given stage of a work order.
	AdvanceStage Capability = iota + 1
	// CreateOrders opens new work orders.
	CreateOrders
	// ViewReports reads the history listing and the efficiency report.
	ViewReports
	// ManageDirectory registers and removes principals.
	ManageDirectory
	// SeeStage shows a board column.
	SeeStage
)

// AccessPolicy is the single place that maps roles to permissions. It is pure
// and keeps no cache, so a principal's role change is seen on the next call.
//
// Rules:
//   - Coordinator may do everything
//   - Planner may do everything except manage the directory
//   - Operator may only advance and see its assigned stage
type AccessPolicy struct{}

// NewAccessPolicy creates an AccessPolicy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanAdvance reports whether p may move an order out of stageBeingLeft.
func (AccessPolicy) CanAdvance(p principal.Principal, stageBeingLeft stage.Stage) bool {
	return allowed(p, AdvanceStage, stageBeingLeft)
}

// CanCreateOrders reports whether p may create work orders.
func (AccessPolicy) CanCreateOrders(p principal.Principal) bool {
	return allowed(p, CreateOrders, "")
}

// CanViewReports reports whether p may read history and reports.
func (AccessPolicy) CanViewReports(p principal.Principal) bool {
	return allowed(p, ViewReports, "")
}

// CanManageDirectory reports whether p may administer principals.
func (AccessPolicy) CanManageDirectory(p principal.Principal) bool {
	return allowed(p, ManageDirectory, "")
}

// CanSeeStage reports whether orders currently in s are visible to p.
func (AccessPolicy) CanSeeStage(p principal.Principal, s stage.Stage) bool {
	return allowed(p, SeeStage, s)
}

// Require returns ErrUnauthorized unless p holds the capability. The stage is
// ignored for capabilities that are not stage scoped.
func (AccessPolicy) Require(p principal.Principal, c Capability, s stage.Stage) error {
	if !allowed(p, c, s) {
		return ErrUnauthorized
	}
	return nil
}

func allowed(p principal.Principal, c Capability, s stage.Stage) bool {
	if p.Validate() != nil {
		return false
	}

	switch p.Role() {
	case principal.Coordinator:
		return true
	case principal.Planner:
		return c != ManageDirectory
	case principal.Operator:
		assigned, _ := p.AssignedStage()
		return (c == AdvanceStage || c == SeeStage) && s == assigned
	default:
		return false
	}
}
