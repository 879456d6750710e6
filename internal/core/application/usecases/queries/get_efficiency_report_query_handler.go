package queries

import (
	"context"

	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// GetEfficiencyReportQueryHandler runs the history aggregator over the full
// history log.
type GetEfficiencyReportQueryHandler struct {
	records    ports.HistoryRepository
	aggregator services.HistoryAggregator
	policy     services.AccessPolicy
}

func NewGetEfficiencyReportQueryHandler(
	records ports.HistoryRepository,
	aggregator services.HistoryAggregator,
	policy services.AccessPolicy,
) GetEfficiencyReportQueryHandler {
	return GetEfficiencyReportQueryHandler{records: records, aggregator: aggregator, policy: policy}
}

// Handle returns an empty table, not an error, when nothing is in range.
func (h GetEfficiencyReportQueryHandler) Handle(
	ctx context.Context,
	query GetEfficiencyReportQuery,
) (services.ReportTable, error) {
	if err := query.Validate(); err != nil {
		return services.ReportTable{}, err
	}

	if !h.policy.CanViewReports(query.Viewer()) {
		return services.ReportTable{}, services.ErrUnauthorized
	}

	all, err := h.records.All(ctx)
	if err != nil {
		return services.ReportTable{}, err
	}

	return h.aggregator.BuildReport(all, query.Filter())
}
