package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery builds the kanban board: one column per stage the viewer may
// see, holding the in-progress orders currently in that stage.
//
// Example:
//
//	query, _ := NewGetBoardQuery(operator)
//	columns, err := handler.Handle(ctx, query)
//	// an operator gets exactly one column, its assigned stage
type GetBoardQuery struct {
	viewer principal.Principal
	guard  guard.ConstructorGuard
}

func NewGetBoardQuery(viewer principal.Principal) (GetBoardQuery, error) {
	if err := viewer.Validate(); err != nil {
		return GetBoardQuery{}, err
	}
	return GetBoardQuery{viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

func (q GetBoardQuery) Viewer() principal.Principal {
	return q.viewer
}

// BoardCard is an order sitting in a board column.
type BoardCard struct {
	ID        kernel.UUID
	Number    string
	Client    string
	EnteredAt time.Time
}

// BoardColumn is one stage with its orders in creation order.
type BoardColumn struct {
	Stage  stage.Stage
	Orders []BoardCard
}
