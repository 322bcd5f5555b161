package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetServicesQueryHandler reads the catalog directly with SQL.
//
// Example:
//
//	handler := NewGetServicesQueryHandler(db)
//	catalog, err := handler.Handle(ctx, NewGetServicesQuery())
//	if err != nil {
//	    return err
//	}
//	for _, s := range catalog {
//	    fmt.Println(s.Description, s.Package)
//	}
type GetServicesQueryHandler struct {
	db *gorm.DB
}

func NewGetServicesQueryHandler(db *gorm.DB) GetServicesQueryHandler {
	return GetServicesQueryHandler{db: db}
}

// Handle returns the catalog sorted by description.
func (h GetServicesQueryHandler) Handle(
	ctx context.Context,
	query GetServicesQuery,
) ([]GetServicesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	catalog := make([]GetServicesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			description,
			COALESCE(package, ''),
			COALESCE(type, ''),
			COALESCE(part, ''),
			COALESCE(remark, '')
		FROM services
		ORDER BY description, id
	`).Rows()
	if err != nil {
		return nil, errs.NewStoreError("select services", err)
	}
	defer rows.Close()

	for rows.Next() {
		var service GetServicesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&service.Description,
			&service.Package,
			&service.Type,
			&service.Part,
			&service.Remark,
		)
		if err != nil {
			return nil, errs.NewStoreError("scan service", err)
		}

		serviceID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		service.ID = serviceID
		catalog = append(catalog, service)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreError("select services", err)
	}

	return catalog, nil
}
