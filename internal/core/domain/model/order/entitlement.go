package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrEntitlementIsNotConstructed is returned for an Entitlement not built by
	// NewEntitlement or RestoreEntitlement.
	ErrEntitlementIsNotConstructed = errors.New("Entitlement must be created via NewEntitlement constructor")
)

// Entitlement is the right to receive a purchased quantity of one catalog service
// under one order. It is a child entity of Order, identified by its service id
// within that order.
//
// Invariants:
//   - purchased >= 1
//   - 0 <= completed <= purchased
//   - status == EntitlementStatus(purchased, completed)
type Entitlement struct {
	serviceID kernel.UUID
	purchased int
	completed int
	status    Status

	// persistedStatus is the status column as loaded; it may lag the counts
	persistedStatus Status
	guard           guard.ConstructorGuard
}

// NewEntitlement creates an entitlement with nothing delivered yet.
func NewEntitlement(serviceID kernel.UUID, purchased int) (*Entitlement, error) {
	return RestoreEntitlement(serviceID, purchased, 0)
}

// RestoreEntitlement rebuilds an entitlement from persisted counts. The status is
// re-derived from the counts; a stored status is never trusted over them.
// Rows written before the completion cap existed may hold completed > purchased;
// those are clamped to purchased.
func RestoreEntitlement(serviceID kernel.UUID, purchased, completed int) (*Entitlement, error) {
	e := &Entitlement{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		e.setServiceID(serviceID),
		e.setCounts(purchased, completed),
	); err != nil {
		return nil, err
	}

	e.status = EntitlementStatus(e.purchased, e.completed)
	e.persistedStatus = e.status
	return e, nil
}

// RestoreStoredEntitlement is RestoreEntitlement for rows that carry a status
// column. A stored status that disagrees with the counts is reported as a change
// by the next reconciliation, which rewrites it.
func RestoreStoredEntitlement(serviceID kernel.UUID, purchased, completed int, stored Status) (*Entitlement, error) {
	e, err := RestoreEntitlement(serviceID, purchased, completed)
	if err != nil {
		return nil, err
	}
	e.persistedStatus = stored
	return e, nil
}

// Validate ensures the entitlement was constructed.
func (e *Entitlement) Validate() error {
	if e == nil {
		return ErrEntitlementIsNotConstructed
	}
	return e.guard.Validate(ErrEntitlementIsNotConstructed)
}

// ServiceID returns the catalog service this entitlement covers.
func (e *Entitlement) ServiceID() kernel.UUID {
	return e.serviceID
}

// Purchased returns the purchased quantity.
func (e *Entitlement) Purchased() int {
	return e.purchased
}

// Completed returns the delivered quantity.
func (e *Entitlement) Completed() int {
	return e.completed
}

// Remaining returns purchased minus completed, never negative.
func (e *Entitlement) Remaining() int {
	return max(e.purchased-e.completed, 0)
}

// Status returns the derived status.
func (e *Entitlement) Status() Status {
	return e.status
}

// IsUsed reports whether the full purchased quantity has been delivered.
func (e *Entitlement) IsUsed() bool {
	return e.status == Used
}

// complete counts one delivered unit. The count is capped at the purchased
// quantity; capped reports that the unit was an overage.
func (e *Entitlement) complete() (capped bool) {
	if e.completed >= e.purchased {
		e.completed = e.purchased
		capped = true
	} else {
		e.completed++
	}
	e.status = EntitlementStatus(e.purchased, e.completed)
	e.persistedStatus = e.status
	return capped
}

// reconcile sets the completed quantity from the number of recorded items.
func (e *Entitlement) reconcile(itemCount int) (changed bool) {
	target := min(max(itemCount, 0), e.purchased)
	status := EntitlementStatus(e.purchased, target)
	changed = target != e.completed || status != e.persistedStatus
	e.completed = target
	e.status = status
	e.persistedStatus = status
	return changed
}

func (e *Entitlement) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service_id", err)
	}
	e.serviceID = serviceID
	return nil
}

func (e *Entitlement) setCounts(purchased, completed int) error {
	if purchased < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", purchased))
	}
	if completed < 0 {
		return errs.NewValueIsOutOfRangeError("completed_quantity", completed, 0, purchased)
	}
	e.purchased = purchased
	e.completed = min(completed, purchased)
	return nil
}
