package ports

import (
	"context"

	"production/internal/core/domain/model/history"
)

// HistoryRepository is the append-only log of closed stage intervals.
type HistoryRepository interface {
	// Append stores one record. Records are never updated or deleted.
	Append(ctx context.Context, record history.Record) error

	// All returns the full log in append order. Date filtering is left to
	// the history aggregator.
	All(ctx context.Context) ([]history.Record, error)
}
