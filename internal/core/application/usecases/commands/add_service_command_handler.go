package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
)

// AddServiceCommandHandler stores a new catalog entry.
type AddServiceCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewAddServiceCommandHandler(uowFactory CatalogUoWFactory) AddServiceCommandHandler {
	return AddServiceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AddServiceCommandHandler) Handle(ctx context.Context, cmd AddServiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	service, err := catalog.NewService(cmd.ServiceID(), cmd.Description(), cmd.Classification(), cmd.Remark())
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

	if err = uow.CatalogRepository().Add(ctx, service); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
