package ports

import (
	"context"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/services"
)

// ReportSink renders a built report somewhere outside the core, such as a
// spreadsheet file.
type ReportSink interface {
	// Write outputs the pivoted table and the raw records it was built from.
	Write(ctx context.Context, table services.ReportTable, records []history.Record) error
}
