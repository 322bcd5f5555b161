package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordExecutionCommandIsNotConstructed = errors.New(
		"RecordExecutionCommand must be created via NewRecordExecutionCommand constructor",
	)
	ErrOccurredAtIsRequired = errs.NewValueIsRequiredError("occurred_at")
)

// RecordExecutionCommand records one delivered unit of a service against an order.
// A blank name is replaced by the catalog description when the command is handled.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("30.00")
//	cmd, err := NewRecordExecutionCommand(kernel.NewUUID(), orderID, serviceID, "", price, "", time.Now())
//	if err != nil {
//	    return err // names every missing field
//	}
//	item, err := handler.Handle(ctx, cmd)
type RecordExecutionCommand struct { //nolint:recvcheck //using for validation
	itemID     kernel.UUID
	orderID    kernel.UUID
	serviceID  kernel.UUID
	name       string
	price      kernel.Money
	remark     string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

func NewRecordExecutionCommand(
	itemID kernel.UUID,
	orderID kernel.UUID,
	serviceID kernel.UUID,
	name string,
	price kernel.Money,
	remark string,
	occurredAt time.Time,
) (RecordExecutionCommand, error) {
	cmd := RecordExecutionCommand{
		name:   name,
		remark: remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID("id", &cmd.itemID, itemID),
		cmd.setID("order_id", &cmd.orderID, orderID),
		cmd.setID("service_id", &cmd.serviceID, serviceID),
		cmd.setPrice(price),
		cmd.setOccurredAt(occurredAt),
	); err != nil {
		return RecordExecutionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordExecutionCommand) Validate() error {
	return c.guard.Validate(ErrRecordExecutionCommandIsNotConstructed)
}

func (c RecordExecutionCommand) ItemID() kernel.UUID { return c.itemID }
func (c RecordExecutionCommand) OrderID() kernel.UUID { return c.orderID }
func (c RecordExecutionCommand) ServiceID() kernel.UUID { return c.serviceID }
func (c RecordExecutionCommand) Name() string { return c.name }
func (c RecordExecutionCommand) Price() kernel.Money { return c.price }
func (c RecordExecutionCommand) Remark() string { return c.remark }
func (c RecordExecutionCommand) OccurredAt() time.Time { return c.occurredAt }

func (c *RecordExecutionCommand) setID(param string, dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}

	*dst = id
	return nil
}

func (c *RecordExecutionCommand) setPrice(price kernel.Money) error {
	if err := requireMoney("price", price); err != nil {
		return err
	}

	c.price = price
	return nil
}

func (c *RecordExecutionCommand) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return ErrOccurredAtIsRequired
	}

	c.occurredAt = occurredAt
	return nil
}
