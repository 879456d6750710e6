package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/principal"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery lists raw history records, optionally limited to entry
// dates between from and to (inclusive). Zero bounds are open. Dates are
// taken in the query's location, UTC unless InLocation says otherwise, the
// same way services.ReportFilter buckets them.
type GetHistoryQuery struct {
	viewer   principal.Principal
	from     time.Time
	to       time.Time
	location *time.Location
	guard    guard.ConstructorGuard
}

func NewGetHistoryQuery(viewer principal.Principal, from, to time.Time) (GetHistoryQuery, error) {
	if err := viewer.Validate(); err != nil {
		return GetHistoryQuery{}, err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return GetHistoryQuery{}, errs.NewValueIsOutOfRangeError(
			"from", from.Format(time.DateOnly), "any date", to.Format(time.DateOnly),
		)
	}
	return GetHistoryQuery{viewer: viewer, from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

// InLocation returns a copy of the query that buckets dates in loc.
func (q GetHistoryQuery) InLocation(loc *time.Location) GetHistoryQuery {
	q.location = loc
	return q
}

// Location returns the calendar used for the date range.
func (q GetHistoryQuery) Location() *time.Location {
	if q.location == nil {
		return time.UTC
	}
	return q.location
}

func (q GetHistoryQuery) Viewer() principal.Principal { return q.viewer }
func (q GetHistoryQuery) From() time.Time             { return q.from }
func (q GetHistoryQuery) To() time.Time               { return q.to }
