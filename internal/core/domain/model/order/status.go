package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle stage of an order or an entitlement.
//
// Derived transitions:
//
//	Pending ──> Started ──> Used
//	   │           │          │
//	   └───────────┴──────────┴──> Cancelled (administrative only)
//
// Entitlements only ever take Pending, Started or Used.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending means nothing has been delivered yet.
	Pending

	// Started means some, but not all, of the purchase has been delivered.
	Started

	// Used means the purchase has been fully delivered.
	Used

	// Cancelled is set by staff and is never produced by the derivation rules.
	Cancelled
)

const cancelAlias = "cancel"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Started:   "started",
		Used:      "used",
		Cancelled: "cancelled",
	}
}

// ParseStatus maps a stored or submitted status string to a Status.
// Matching is case-insensitive and ignores surrounding spaces. The legacy
// spelling "cancel" is accepted as an alias of "cancelled".
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == cancelAlias {
		return Cancelled, nil
	}
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateForEntitlement rejects statuses an entitlement can never hold.
func (s Status) ValidateForEntitlement() error {
	if s != Pending && s != Started && s != Used {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid entitlement status", s.String()),
		)
	}
	return nil
}

// String returns the canonical lowercase name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether executions may still be recorded.
func (s Status) IsOpen() bool {
	return s == Pending || s == Started
}

// EntitlementStatus derives an entitlement's status from its counts:
// Used when completed >= purchased, Started when completed > 0, Pending otherwise.
func EntitlementStatus(purchased, completed int) Status {
	switch {
	case completed >= purchased:
		return Used
	case completed > 0:
		return Started
	default:
		return Pending
	}
}

// DeriveOrderStatus folds entitlement statuses into an order status.
//
// Returns:
//   - (Used, true) when every entitlement is used
//   - (Pending, true) when every entitlement is pending
//   - (Started, true) for any other mix
//   - (Unknown, false) when there are no entitlements; the caller keeps its status
func DeriveOrderStatus(statuses []Status) (Status, bool) {
	if len(statuses) == 0 {
		return Unknown, false
	}

	used, pending := 0, 0
	for _, s := range statuses {
		switch s {
		case Used:
			used++
		case Pending:
			pending++
		default:
		}
	}

	switch {
	case used == len(statuses):
		return Used, true
	case pending == len(statuses):
		return Pending, true
	default:
		return Started, true
	}
}
