package queries

import (
	"context"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// ListOrdersQueryHandler returns the orders whose current stage the viewer
// may see.
type ListOrdersQueryHandler struct {
	orders ports.OrderRepository
	policy services.AccessPolicy
}

func NewListOrdersQueryHandler(orders ports.OrderRepository, policy services.AccessPolicy) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, policy: policy}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		all []*order.WorkOrder
		err error
	)
	if query.Stage() != "" {
		all, err = h.orders.ListInStage(ctx, query.Stage())
	} else {
		all, err = h.orders.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := make([]OrderResponse, 0, len(all))
	for _, o := range all {
		if o.IsCompleted() && !query.IncludeCompleted() {
			continue
		}
		if !h.policy.CanSeeStage(query.Viewer(), o.CurrentStage()) {
			continue
		}
		result = append(result, newOrderResponse(o))
	}

	return result, nil
}
