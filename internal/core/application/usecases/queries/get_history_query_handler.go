package queries

import (
	"context"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// GetHistoryQueryHandler returns the history log for report viewers.
type GetHistoryQueryHandler struct {
	records ports.HistoryRepository
	policy  services.AccessPolicy
}

func NewGetHistoryQueryHandler(records ports.HistoryRepository, policy services.AccessPolicy) GetHistoryQueryHandler {
	return GetHistoryQueryHandler{records: records, policy: policy}
}

// Handle returns records in append order.
func (h GetHistoryQueryHandler) Handle(ctx context.Context, query GetHistoryQuery) ([]history.Record, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !h.policy.CanViewReports(query.Viewer()) {
		return nil, services.ErrUnauthorized
	}

	all, err := h.records.All(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]history.Record, 0, len(all))
	for _, r := range all {
		if inDateRange(r.EntryTime(), query.From(), query.To(), query.Location()) {
			result = append(result, r)
		}
	}

	return result, nil
}

func inDateRange(t, from, to time.Time, loc *time.Location) bool {
	day := t.In(loc).Format(time.DateOnly)
	if !from.IsZero() && day < from.In(loc).Format(time.DateOnly) {
		return false
	}
	if !to.IsZero() && day > to.In(loc).Format(time.DateOnly) {
		return false
	}
	return true
}
