package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/order"
)

// RecordExecutionCommandHandler is the execution recorder. It applies one execution
// item to its order atomically:
//
//  1. lock the order row and load all its entitlements
//  2. refuse cancelled orders, services never purchased and (under RejectOverage)
//     exhausted entitlements
//  3. resolve the catalog entry; a blank item name becomes the catalog description
//  4. insert the item
//  5. advance the entitlement's completed quantity (capped at purchased) and
//     re-derive entitlement and order status
//  6. persist the entitlement and order, commit
//
// Any failure rolls the whole sequence back. Domain events are dispatched only after
// the commit.
//
// Example:
//
//	handler := NewRecordExecutionCommandHandler(uowFactory, order.CapOverage, dispatcher)
//	item, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotEntitled):
//	    // service was never purchased on this order
//	case err != nil:
//	    return err
//	}
type RecordExecutionCommandHandler struct {
	uowFactory UoWFactory
	policy     order.OveragePolicy
	events     EventDispatcher
}

func NewRecordExecutionCommandHandler(
	uowFactory UoWFactory,
	policy order.OveragePolicy,
	events EventDispatcher,
) RecordExecutionCommandHandler {
	return RecordExecutionCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		events:     events,
	}
}

// Handle records the execution and returns the stored item.
func (h *RecordExecutionCommandHandler) Handle(
	ctx context.Context,
	cmd RecordExecutionCommand,
) (*execution.Item, error) {
	start := time.Now()

	item, o, capped, err := h.record(ctx, cmd)
	if err != nil {
		h.events.rejected(err)
		return nil, err
	}

	h.events.observer.ExecutionRecorded(time.Since(start), capped)
	h.events.dispatch(ctx, o)
	return item, nil
}

func (h *RecordExecutionCommandHandler) record(
	ctx context.Context,
	cmd RecordExecutionCommand,
) (*execution.Item, *order.Order, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, false, err
	}

	if _, err = o.CheckExecution(cmd.ServiceID(), h.policy); err != nil {
		return nil, nil, false, err
	}

	service, err := uow.CatalogRepository().Get(ctx, cmd.ServiceID())
	if err != nil {
		return nil, nil, false, err
	}

	item, err := execution.NewItem(
		cmd.ItemID(),
		cmd.OrderID(),
		cmd.ServiceID(),
		execution.ResolveName(cmd.Name(), service.Description()),
		cmd.Price(),
		cmd.Remark(),
		cmd.OccurredAt(),
	)
	if err != nil {
		return nil, nil, false, err
	}

	if err = uow.ItemRepository().Add(ctx, item); err != nil {
		return nil, nil, false, err
	}

	capped, err := o.RecordExecution(item, h.policy)
	if err != nil {
		return nil, nil, false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, false, err
	}

	return item, o, capped, nil
}
