package ports

import (
	"context"

	"production/internal/core/domain/model/order"
)

// ProgressionObserver is notified after order changes are committed.
// Implementations must not block.
type ProgressionObserver interface {
	OrderCreated(ctx context.Context, o *order.WorkOrder)
	OrderAdvanced(ctx context.Context, tr order.Transition)
}
