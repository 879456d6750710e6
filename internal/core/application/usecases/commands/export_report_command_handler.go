package commands

import (
	"context"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// ExportReportCommandHandler renders reports through a ports.ReportSink.
type ExportReportCommandHandler struct {
	records    ports.HistoryRepository
	aggregator services.HistoryAggregator
	policy     services.AccessPolicy
	sink       ports.ReportSink
}

func NewExportReportCommandHandler(
	records ports.HistoryRepository,
	aggregator services.HistoryAggregator,
	policy services.AccessPolicy,
	sink ports.ReportSink,
) *ExportReportCommandHandler {
	return &ExportReportCommandHandler{records: records, aggregator: aggregator, policy: policy, sink: sink}
}

// Handle writes the report even when it is empty, so a scheduled export
// always leaves a file behind. It returns the table that was written.
func (h *ExportReportCommandHandler) Handle(ctx context.Context, cmd ExportReportCommand) (services.ReportTable, error) {
	if err := cmd.Validate(); err != nil {
		return services.ReportTable{}, err
	}

	if !h.policy.CanViewReports(cmd.Actor()) {
		return services.ReportTable{}, services.ErrUnauthorized
	}

	all, err := h.records.All(ctx)
	if err != nil {
		return services.ReportTable{}, err
	}

	table, err := h.aggregator.BuildReport(all, cmd.Filter())
	if err != nil {
		return services.ReportTable{}, err
	}

	inRange := make([]history.Record, 0, len(all))
	for _, r := range all {
		if cmd.Filter().Contains(r.EntryTime()) {
			inRange = append(inRange, r)
		}
	}

	if err = h.sink.Write(ctx, table, inRange); err != nil {
		return services.ReportTable{}, err
	}

	return table, nil
}
