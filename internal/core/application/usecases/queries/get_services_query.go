package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetServicesQueryIsNotConstructed = errors.New(
		"GetServicesQuery must be created via NewGetServicesQuery constructor",
	)
)

// GetServicesQuery lists the service catalog.
type GetServicesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetServicesQuery() GetServicesQuery {
	return GetServicesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetServicesQuery) Validate() error {
	return q.guard.Validate(ErrGetServicesQueryIsNotConstructed)
}

type GetServicesQueryResponse struct {
	ID          kernel.UUID
	Description string
	Package     string
	Type        string
	Part        string
	Remark      string
}
