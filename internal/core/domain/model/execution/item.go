package execution

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
	ErrNameIsRequired       = errs.NewValueIsRequiredError("name")
	ErrOccurredAtIsRequired = errs.NewValueIsRequiredError("occurred_at")
)

// Item is one recorded service execution.
type Item struct {
	id         kernel.UUID
	orderID    kernel.UUID
	serviceID  kernel.UUID
	name       string
	price      kernel.Money
	remark     string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

// NewItem validates and creates an execution item. The name must already be
// resolved (see ResolveName); price must be a constructed Money.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("30.00")
//	item, err := execution.NewItem(kernel.NewUUID(), orderID, serviceID,
//	    execution.ResolveName(req.Name, service.Description()), price, "", time.Now())
func NewItem(
	id, orderID, serviceID kernel.UUID,
	name string,
	price kernel.Money,
	remark string,
	occurredAt time.Time,
) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameIsRequired
	}
	return RestoreItem(id, orderID, serviceID, name, price, remark, occurredAt)
}

// RestoreItem rebuilds a persisted item. Unlike NewItem it tolerates a blank name,
// which older rows may carry.
func RestoreItem(
	id, orderID, serviceID kernel.UUID,
	name string,
	price kernel.Money,
	remark string,
	occurredAt time.Time,
) (*Item, error) {
	if err := errors.Join(
		requireID("id", id),
		requireID("order_id", orderID),
		requireID("service_id", serviceID),
		requirePrice(price),
		requireOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:         id,
		orderID:    orderID,
		serviceID:  serviceID,
		name:       strings.TrimSpace(name),
		price:      price,
		remark:     remark,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ResolveName returns name, or fallback when name is blank.
func ResolveName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return strings.TrimSpace(fallback)
	}
	return strings.TrimSpace(name)
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Item) ServiceID() kernel.UUID {
	return i.serviceID
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Price() kernel.Money {
	return i.price
}

func (i *Item) Remark() string {
	return i.remark
}

func (i *Item) OccurredAt() time.Time {
	return i.occurredAt
}

func requireID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func requirePrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	return nil
}

func requireOccurredAt(at time.Time) error {
	if at.IsZero() {
		return ErrOccurredAtIsRequired
	}
	return nil
}
