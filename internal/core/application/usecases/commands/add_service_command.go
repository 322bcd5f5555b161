package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddServiceCommandIsNotConstructed = errors.New(
		"AddServiceCommand must be created via NewAddServiceCommand constructor",
	)
)

// AddServiceCommand adds an entry to the service catalog.
type AddServiceCommand struct { //nolint:recvcheck //using for validation
	serviceID      kernel.UUID
	description    string
	classification catalog.Classification
	remark         string

	guard guard.ConstructorGuard
}

func NewAddServiceCommand(
	serviceID kernel.UUID,
	description string,
	classification catalog.Classification,
	remark string,
) (AddServiceCommand, error) {
	var descErr error
	if strings.TrimSpace(description) == "" {
		descErr = catalog.ErrDescriptionIsRequired
	}

	if err := errors.Join(serviceID.Validate(), descErr); err != nil {
		return AddServiceCommand{}, err
	}

	return AddServiceCommand{
		serviceID:      serviceID,
		description:    description,
		classification: classification,
		remark:         remark,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AddServiceCommand) Validate() error {
	return c.guard.Validate(ErrAddServiceCommandIsNotConstructed)
}

func (c AddServiceCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

func (c AddServiceCommand) Description() string {
	return c.description
}

func (c AddServiceCommand) Classification() catalog.Classification {
	return c.classification
}

func (c AddServiceCommand) Remark() string {
	return c.remark
}
