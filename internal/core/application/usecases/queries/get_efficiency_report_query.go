package queries

import (
	"errors"

	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/services"
	"production/internal/pkg/guard"
)

var ErrGetEfficiencyReportQueryIsNotConstructed = errors.New(
	"GetEfficiencyReportQuery must be created via NewGetEfficiencyReportQuery constructor",
)

// GetEfficiencyReportQuery builds the per-order efficiency report for a date
// range.
//
// Example:
//
//	query, err := NewGetEfficiencyReportQuery(planner, services.ReportFilter{
//	    From: from, To: to, IdealMinutes: 60,
//	})
//	table, err := handler.Handle(ctx, query)
//	if table.IsEmpty() {
//	    // nothing entered a stage in the range
//	}
type GetEfficiencyReportQuery struct {
	viewer principal.Principal
	filter services.ReportFilter
	guard  guard.ConstructorGuard
}

func NewGetEfficiencyReportQuery(viewer principal.Principal, filter services.ReportFilter) (GetEfficiencyReportQuery, error) {
	if err := errors.Join(viewer.Validate(), filter.Validate()); err != nil {
		return GetEfficiencyReportQuery{}, err
	}
	return GetEfficiencyReportQuery{viewer: viewer, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEfficiencyReportQuery) Validate() error {
	return q.guard.Validate(ErrGetEfficiencyReportQueryIsNotConstructed)
}

func (q GetEfficiencyReportQuery) Viewer() principal.Principal   { return q.viewer }
func (q GetEfficiencyReportQuery) Filter() services.ReportFilter { return q.filter }
