package services

import (
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/principal"
)

// ProgressionEngine applies the gated transition of a work order.
//
// Checks run in this order and stop at the first failure, before anything is
// mutated:
//  1. the order is valid
//  2. the order is not completed (order.ErrAlreadyCompleted)
//  3. the principal may leave the current stage (ErrUnauthorized)
//  4. now is not before the current stage's entry
//
// Example usage:
//
//	engine := services.NewProgressionEngine(services.NewAccessPolicy())
//	tr, err := engine.Advance(operator, o, time.Now())
//	if errors.Is(err, services.ErrUnauthorized) {
//	    // operator is assigned to another stage
//	}
type ProgressionEngine struct {
	policy AccessPolicy
}

// NewProgressionEngine creates an engine gated by policy.
func NewProgressionEngine(policy AccessPolicy) ProgressionEngine {
	return ProgressionEngine{policy: policy}
}

// Advance moves o out of its current stage at now and returns the transition,
// including the single history record to persist with it.
func (e ProgressionEngine) Advance(p principal.Principal, o *order.WorkOrder, now time.Time) (order.Transition, error) {
	if err := o.Validate(); err != nil {
		return order.Transition{}, err
	}

	if o.IsCompleted() {
		return order.Transition{}, order.ErrAlreadyCompleted
	}

	if err := e.policy.Require(p, AdvanceStage, o.CurrentStage()); err != nil {
		return order.Transition{}, err
	}

	return o.Advance(now)
}
