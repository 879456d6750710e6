package queries

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to the viewer, in creation order.
//
// Example:
//
//	query, _ := NewListOrdersQuery(viewer, false)
//	orders, err := handler.Handle(ctx, query)
//
// InStage narrows the result to the orders currently waiting in one stage.
type ListOrdersQuery struct {
	viewer           principal.Principal
	includeCompleted bool
	stage            stage.Stage
	guard            guard.ConstructorGuard
}

func NewListOrdersQuery(viewer principal.Principal, includeCompleted bool) (ListOrdersQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{viewer: viewer, includeCompleted: includeCompleted, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// InStage returns a copy of the query restricted to in-progress orders
// whose current stage is s.
func (q ListOrdersQuery) InStage(s stage.Stage) ListOrdersQuery {
	q.stage = s
	return q
}

func (q ListOrdersQuery) Viewer() principal.Principal { return q.viewer }
func (q ListOrdersQuery) IncludeCompleted() bool      { return q.includeCompleted }
func (q ListOrdersQuery) Stage() stage.Stage          { return q.stage }
