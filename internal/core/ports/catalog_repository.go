package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogRepository gives access to the service catalog.
type CatalogRepository interface {
	Add(ctx context.Context, service *catalog.Service) error

	// Get returns *errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error)
}
