// Package queries contains read operations. Handlers never mutate state and
// return response structs built from fresh copies of the stored data.
package queries

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
)

// StageIntervalResponse is one planned stage of an order. Nil times are
// boundaries not reached yet.
type StageIntervalResponse struct {
	Stage     stage.Stage
	EnteredAt *time.Time
	ExitedAt  *time.Time
	Duration  time.Duration
}

// OrderResponse is a read-only view of a work order.
type OrderResponse struct {
	ID           kernel.UUID
	Number       string
	Client       string
	CurrentStage stage.Stage
	Status       order.Status
	CreatedAt    time.Time
	Version      int
	Stages       []StageIntervalResponse
}

func newOrderResponse(o *order.WorkOrder) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID(),
		Number:       o.Number(),
		Client:       o.Client(),
		CurrentStage: o.CurrentStage(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		Version:      o.Version(),
	}

	for _, si := range o.Intervals() {
		item := StageIntervalResponse{Stage: si.Stage, Duration: si.Interval.Duration()}
		if entry, ok := si.Interval.Entry(); ok {
			item.EnteredAt = &entry
		}
		if exit, ok := si.Interval.Exit(); ok {
			item.ExitedAt = &exit
		}
		resp.Stages = append(resp.Stages, item)
	}

	return resp
}
