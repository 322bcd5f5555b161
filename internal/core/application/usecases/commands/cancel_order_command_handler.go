package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order from any status. Cancelling an already
// cancelled order succeeds without writing anything.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	events     EventDispatcher
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, events EventDispatcher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		events:     events,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Cancelled {
		return nil
	}
	o.Cancel()

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.events.dispatch(ctx, o)
	return nil
}
