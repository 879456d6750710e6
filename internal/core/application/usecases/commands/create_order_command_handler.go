package commands

import (
	"context"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// CreateOrderCommandHandler opens work orders. Only principals allowed to
// create orders may use it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog, services.NewAccessPolicy(), observer)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, stage.ErrInvalidPlan) {
//	    // stages are missing or out of catalog order
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    stage.Catalog
	policy     services.AccessPolicy
	observer   ports.ProgressionObserver
}

// NewCreateOrderCommandHandler creates a handler for order creation. observer
// may be nil.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog stage.Catalog,
	policy services.AccessPolicy,
	observer ports.ProgressionObserver,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		policy:     policy,
		observer:   observer,
	}
}

// Handle authorizes the actor, validates the plan against the catalog and
// persists the new order positioned on its first stage.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.policy.CanCreateOrders(cmd.Actor()) {
		return services.ErrUnauthorized
	}

	plan, err := h.catalog.ParsePlan(cmd.Plan())
	if err != nil {
		return err
	}

	aggregate, err := order.NewWorkOrder(cmd.OrderID(), cmd.Number(), cmd.Client(), plan, h.catalog, cmd.CreatedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.observer != nil {
		h.observer.OrderCreated(ctx, aggregate)
	}

	return nil
}
