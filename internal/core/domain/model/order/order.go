package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/ddd"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInfoIsRequired is returned when the order label is blank.
	ErrInfoIsRequired = errs.NewValueIsRequiredError("info")

	// ErrPurchasedAtIsRequired is returned when the purchase timestamp is zero.
	ErrPurchasedAtIsRequired = errs.NewValueIsRequiredError("purchased_at")

	// ErrOrderIsCancelled is returned when an execution targets a cancelled order.
	ErrOrderIsCancelled = errs.NewValueIsInvalidErrorWithCause(
		"status", errors.New("cancelled orders do not accept executions"))

	// ErrEntitlementExhausted is returned under RejectOverage when the entitlement
	// is already fully used.
	ErrEntitlementExhausted = errs.NewValueIsInvalidErrorWithCause(
		"service_id", errors.New("entitlement is already fully used"))
)

// Order is a purchased bundle of service entitlements and the aggregate root of the
// fulfillment engine.
//
// Order follows these invariants:
//   - Must have a valid identifier, a non-blank label and a purchase timestamp
//   - Prices are non-negative Money values
//   - At most one entitlement per catalog service
//   - Status is derived from entitlement statuses, except for Cancelled
//   - Can only be created through NewOrder or RestoreOrder
//
// Mutations raise domain events (see events.go) which the application layer
// dispatches after the enclosing transaction commits.
type Order struct {
	ddd.EventRecorder

	id              kernel.UUID
	info            string
	price           kernel.Money
	discountedPrice kernel.Money
	purchasedAt     time.Time
	status          Status
	remark          string
	entitlements    []*Entitlement

	// persistedStatus is the status as loaded, advanced by every raised transition.
	// It differs from status when the stored value was stale.
	persistedStatus Status
	guard           guard.ConstructorGuard
}

// NewOrder creates a pending order without entitlements. Add purchased services
// with AddEntitlement.
//
// Parameters:
//   - id: identifier of the order
//   - info: descriptive label shown to staff
//   - price: listed price
//   - discountedPrice: the payable price; consumption is measured against it
//   - purchasedAt: purchase timestamp
//   - remark: free text
//
// Example:
//
//	price, _ := kernel.MoneyFromString("120.00")
//	paid, _ := kernel.MoneyFromString("100.00")
//	o, err := order.NewOrder(kernel.NewUUID(), "Spa bundle", price, paid, time.Now(), "")
//	if err != nil {
//	    return err
//	}
//	if err = o.AddEntitlement(massageID, 3); err != nil {
//	    return err
//	}
func NewOrder(
	id kernel.UUID,
	info string,
	price kernel.Money,
	discountedPrice kernel.Money,
	purchasedAt time.Time,
	remark string,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		persistedStatus: Pending,
		remark:          remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setInfo(info),
		o.setPrices(price, discountedPrice),
		o.setPurchasedAt(purchasedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. A stored status other than
// Cancelled is re-derived from the entitlements so a stale cached status cannot
// survive a load. The stored value is remembered: the next RefreshStatus or
// Reconcile reports the repair and raises the transition from it.
func RestoreOrder(
	id kernel.UUID,
	info string,
	price kernel.Money,
	discountedPrice kernel.Money,
	purchasedAt time.Time,
	status Status,
	remark string,
	entitlements []*Entitlement,
) (*Order, error) {
	o := &Order{
		remark: remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setInfo(info),
		o.setPrices(price, discountedPrice),
		o.setPurchasedAt(purchasedAt),
		o.setStatus(status),
		o.setEntitlements(entitlements),
	); err != nil {
		return nil, err
	}

	if o.status != Cancelled {
		if derived, ok := o.deriveStatus(); ok {
			o.status = derived
		}
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Info() string {
	return o.info
}

func (o *Order) Price() kernel.Money {
	return o.price
}

func (o *Order) DiscountedPrice() kernel.Money {
	return o.discountedPrice
}

func (o *Order) PurchasedAt() time.Time {
	return o.purchasedAt
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Remark() string {
	return o.remark
}

// Entitlements returns a copy of the entitlement list.
func (o *Order) Entitlements() []*Entitlement {
	out := make([]*Entitlement, len(o.entitlements))
	copy(out, o.entitlements)
	return out
}

// Entitlement finds the entitlement for a catalog service.
func (o *Order) Entitlement(serviceID kernel.UUID) (*Entitlement, bool) {
	for _, e := range o.entitlements {
		if e.serviceID.IsEqual(serviceID) {
			return e, true
		}
	}
	return nil, false
}

// AddEntitlement adds a purchased quantity of a catalog service. Only allowed
// while nothing has been delivered on the order.
func (o *Order) AddEntitlement(serviceID kernel.UUID, quantity int) error {
	if o.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to add entitlements", o.status))
	}
	if _, exists := o.Entitlement(serviceID); exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"service_id", fmt.Errorf("service %s is already entitled", serviceID))
	}

	e, err := NewEntitlement(serviceID, quantity)
	if err != nil {
		return err
	}

	o.entitlements = append(o.entitlements, e)
	return nil
}

// CheckExecution reports whether an execution of serviceID may be recorded, without
// changing anything.
//
// Returns:
//   - ErrOrderIsCancelled if the order is cancelled
//   - *errs.NotEntitledError if the service was never purchased on this order
//   - ErrEntitlementExhausted under RejectOverage when the entitlement is used up
func (o *Order) CheckExecution(serviceID kernel.UUID, policy OveragePolicy) (*Entitlement, error) {
	if o.status == Cancelled {
		return nil, ErrOrderIsCancelled
	}

	e, ok := o.Entitlement(serviceID)
	if !ok {
		return nil, errs.NewNotEntitledError(o.id.String(), serviceID.String())
	}

	if policy == RejectOverage && e.IsUsed() {
		return nil, ErrEntitlementExhausted
	}

	return e, nil
}

// RecordExecution applies one execution item to the order: the matching
// entitlement's completed quantity advances by one (capped at the purchased
// quantity), its status is re-derived, then the order status is re-derived from all
// entitlements and changed only if it differs.
//
// Returns capped == true when the item was an overage under CapOverage.
//
// Example:
//
//	capped, err := o.RecordExecution(item, order.CapOverage)
//	if err != nil {
//	    return err // cancelled, not entitled, exhausted or foreign item
//	}
func (o *Order) RecordExecution(item *execution.Item, policy OveragePolicy) (capped bool, err error) {
	if err = item.Validate(); err != nil {
		return false, err
	}
	if !item.OrderID().IsEqual(o.id) {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("item belongs to order %s, not %s", item.OrderID(), o.id))
	}

	e, err := o.CheckExecution(item.ServiceID(), policy)
	if err != nil {
		return false, err
	}

	capped = e.complete()
	o.RaiseEvent(ExecutionRecordedEvent{
		BaseEvent: ddd.NewBaseEvent(ExecutionRecordedEventName),
		OrderID:   o.id,
		ServiceID: e.serviceID,
		ItemID:    item.ID(),
		Price:     item.Price().Amount(),
		Completed: e.completed,
		Purchased: e.purchased,
		Overage:   capped,
	})

	o.RefreshStatus()
	return capped, nil
}

// RefreshStatus re-derives the order status from its entitlements and reports a
// change when it differs from the persisted status. Cancelled orders and orders
// without entitlements are left untouched. Calling it repeatedly without new executions never changes the result.
func (o *Order) RefreshStatus() (changed bool) {
	if o.status == Cancelled {
		return false
	}

	derived, ok := o.deriveStatus()
	if !ok {
		return false
	}
	o.status = derived
	if derived == o.persistedStatus {
		return false
	}

	o.changeStatus(derived)
	return true
}

// Reconcile aligns every entitlement with the authoritative number of recorded
// items per service, then refreshes the order status. Services missing from
// itemCounts are treated as having no items.
func (o *Order) Reconcile(itemCounts map[kernel.UUID]int) (changed bool) {
	for _, e := range o.entitlements {
		if e.reconcile(itemCounts[e.serviceID]) {
			changed = true
		}
	}
	if o.RefreshStatus() {
		changed = true
	}
	return changed
}

// Cancel is the administrative cancellation. It is allowed from any status and is
// a no-op on an already cancelled order.
func (o *Order) Cancel() {
	if o.status == Cancelled {
		return
	}
	o.changeStatus(Cancelled)
}

func (o *Order) deriveStatus() (Status, bool) {
	statuses := make([]Status, 0, len(o.entitlements))
	for _, e := range o.entitlements {
		statuses = append(statuses, EntitlementStatus(e.purchased, e.completed))
	}
	return DeriveOrderStatus(statuses)
}

func (o *Order) changeStatus(to Status) {
	from := o.persistedStatus
	o.status = to
	o.persistedStatus = to
	o.RaiseEvent(StatusChangedEvent{
		BaseEvent: ddd.NewBaseEvent(OrderStatusChangedEventName),
		OrderID:   o.id,
		From:      from.String(),
		To:        to.String(),
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setInfo(info string) error {
	if strings.TrimSpace(info) == "" {
		return ErrInfoIsRequired
	}
	o.info = strings.TrimSpace(info)
	return nil
}

func (o *Order) setPrices(price, discountedPrice kernel.Money) error {
	if err := errors.Join(
		requireMoney("price", price),
		requireMoney("discounted_price", discountedPrice),
	); err != nil {
		return err
	}
	o.price = price
	o.discountedPrice = discountedPrice
	return nil
}

func (o *Order) setPurchasedAt(purchasedAt time.Time) error {
	if purchasedAt.IsZero() {
		return ErrPurchasedAtIsRequired
	}
	o.purchasedAt = purchasedAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	o.persistedStatus = status
	return nil
}

func (o *Order) setEntitlements(entitlements []*Entitlement) error {
	seen := make(map[kernel.UUID]struct{}, len(entitlements))
	for _, e := range entitlements {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.serviceID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"service_id", fmt.Errorf("service %s is entitled twice", e.serviceID))
		}
		seen[e.serviceID] = struct{}{}
	}
	o.entitlements = append([]*Entitlement(nil), entitlements...)
	return nil
}

func requireMoney(param string, m kernel.Money) error {
	if err := m.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
