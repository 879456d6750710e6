// Package ports defines the contracts between the production core and its
// infrastructure: persistence, the user directory, report output and
// progression observers.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
)

// OrderRepository is the order record store. It is the exclusive owner of
// work order state; only the progression use cases write through it.
type OrderRepository interface {
	// Add persists a newly created order.
	Add(ctx context.Context, aggregate *order.WorkOrder) error

	// Update persists an order that was advanced once since it was loaded.
	// The stored version must equal aggregate.Version()-1, otherwise
	// errs.ErrConcurrentModification is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.WorkOrder) error

	// Get returns a fresh copy of the order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error)

	// List returns every order in insertion order.
	List(ctx context.Context) ([]*order.WorkOrder, error)

	// ListInStage returns in-progress orders whose current stage is s, in
	// insertion order.
	ListInStage(ctx context.Context, s stage.Stage) ([]*order.WorkOrder, error)
}
