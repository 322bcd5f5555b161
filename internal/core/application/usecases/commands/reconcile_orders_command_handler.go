package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReconcileOrdersCommandHandler repairs drift between stored counts and the item
// ledger. Each order is reconciled in its own transaction under the same row lock
// the execution recorder takes, so it never races a concurrent recording.
type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	events     EventDispatcher
}

func NewReconcileOrdersCommandHandler(uowFactory UoWFactory, events EventDispatcher) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

// Handle returns the number of orders whose stored state changed.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.activeOrderIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range ids {
		changed, reconcileErr := h.reconcile(ctx, id)
		if reconcileErr != nil {
			return repaired, reconcileErr
		}
		if changed {
			repaired++
		}
	}

	return repaired, nil
}

func (h *ReconcileOrdersCommandHandler) activeOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetActiveIDs(ctx)
}

func (h *ReconcileOrdersCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// deleted since the ids were listed
		return false, nil
	}
	if err != nil {
		return false, err
	}

	counts, err := uow.ItemRepository().CountByService(ctx, id)
	if err != nil {
		return false, err
	}

	if !o.Reconcile(counts) {
		return false, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.events.dispatch(ctx, o)
	return true, nil
}
