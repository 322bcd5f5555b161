package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrInfoIsRequired         = errs.NewValueIsRequiredError("info")
	ErrPurchasedAtIsRequired  = errs.NewValueIsRequiredError("purchased_at")
	ErrEntitlementsAreMissing = errs.NewValueIsRequiredError("services")
)

// EntitlementLine is one purchased service of a new order.
type EntitlementLine struct {
	ServiceID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents the purchase of a bundle of services.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	price, _ := kernel.MoneyFromString("120.00")
//	paid, _ := kernel.MoneyFromString("100.00")
//	cmd, err := NewCreateOrderCommand(orderID, "Spa bundle", price, paid, time.Now(), "",
//	    []EntitlementLine{{ServiceID: massageID, Quantity: 3}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	info            string
	price           kernel.Money
	discountedPrice kernel.Money
	purchasedAt     time.Time
	remark          string
	lines           []EntitlementLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order header and its lines. Every line needs a
// service id and a positive quantity; a service may appear only once.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	info string,
	price kernel.Money,
	discountedPrice kernel.Money,
	purchasedAt time.Time,
	remark string,
	lines []EntitlementLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		remark: remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setInfo(info),
		cmd.setPrices(price, discountedPrice),
		cmd.setPurchasedAt(purchasedAt),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Info() string {
	return c.info
}

func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

func (c CreateOrderCommand) DiscountedPrice() kernel.Money {
	return c.discountedPrice
}

func (c CreateOrderCommand) PurchasedAt() time.Time {
	return c.purchasedAt
}

func (c CreateOrderCommand) Remark() string {
	return c.remark
}

// Lines returns a copy of the entitlement lines.
func (c CreateOrderCommand) Lines() []EntitlementLine {
	return append([]EntitlementLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setInfo(info string) error {
	if strings.TrimSpace(info) == "" {
		return ErrInfoIsRequired
	}

	c.info = info
	return nil
}

func (c *CreateOrderCommand) setPrices(price, discountedPrice kernel.Money) error {
	if err := errors.Join(
		requireMoney("price", price),
		requireMoney("discounted_price", discountedPrice),
	); err != nil {
		return err
	}

	c.price = price
	c.discountedPrice = discountedPrice
	return nil
}

func (c *CreateOrderCommand) setPurchasedAt(purchasedAt time.Time) error {
	if purchasedAt.IsZero() {
		return ErrPurchasedAtIsRequired
	}

	c.purchasedAt = purchasedAt
	return nil
}

func (c *CreateOrderCommand) setLines(lines []EntitlementLine) error {
	if len(lines) == 0 {
		return ErrEntitlementsAreMissing
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for i, line := range lines {
		if err := line.ServiceID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("services[%d].service_id", i), err)
		}
		if line.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("services[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
		if _, dup := seen[line.ServiceID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("services[%d].service_id", i),
				fmt.Errorf("service %s is listed twice", line.ServiceID),
			)
		}
		seen[line.ServiceID] = struct{}{}
	}

	c.lines = append([]EntitlementLine(nil), lines...)
	return nil
}

func requireMoney(param string, m kernel.Money) error {
	if err := m.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
