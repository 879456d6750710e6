package commands

import (
	"context"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/keylock"
)

// AdvanceOrderCommandHandler performs the gated transition of a work order.
//
// Advances of the same order are serialized in process by a keyed lock; the
// repository's version check rejects writers from other processes. The order
// update and its history record share one transaction, so a failure leaves
// both untouched.
//
// Example:
//
//	cmd, _ := NewAdvanceOrderCommand(operator, orderID, time.Now())
//	tr, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrUnauthorized):
//	case errors.Is(err, order.ErrAlreadyCompleted):
//	case err == nil && tr.Completed:
//	}
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     services.ProgressionEngine
	locks      *keylock.KeyedMutex
	observer   ports.ProgressionObserver
}

// NewAdvanceOrderCommandHandler creates the handler. Handlers sharing state
// must share locks. observer may be nil.
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	engine services.ProgressionEngine,
	locks *keylock.KeyedMutex,
	observer ports.ProgressionObserver,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		locks:      locks,
		observer:   observer,
	}
}

// Handle loads the order, applies the transition and persists it with its
// history record.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (order.Transition, error) {
	if err := cmd.Validate(); err != nil {
		return order.Transition{}, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Transition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Transition{}, err
	}

	tr, err := h.engine.Advance(cmd.Actor(), aggregate, cmd.At())
	if err != nil {
		return order.Transition{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.Transition{}, err
	}

	if err = uow.HistoryRepository().Append(ctx, tr.Record); err != nil {
		return order.Transition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Transition{}, err
	}

	if h.observer != nil {
		h.observer.OrderAdvanced(ctx, tr)
	}

	return tr, nil
}
