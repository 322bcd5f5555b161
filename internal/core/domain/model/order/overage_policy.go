package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// OveragePolicy decides what happens when an execution is recorded against an
// entitlement that is already fully used.
type OveragePolicy int

const (
	// CapOverage records the item and keeps the completed quantity at the purchased
	// quantity.
	CapOverage OveragePolicy = iota

	// RejectOverage refuses the execution with ErrEntitlementExhausted.
	RejectOverage
)

// ParseOveragePolicy accepts "cap" (also the empty string) and "reject".
func ParseOveragePolicy(s string) (OveragePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cap":
		return CapOverage, nil
	case "reject":
		return RejectOverage, nil
	default:
		return CapOverage, errs.NewValueIsInvalidErrorWithCause("overage_policy", fmt.Errorf("%q is not cap or reject", s))
	}
}

func (p OveragePolicy) String() string {
	if p == RejectOverage {
		return "reject"
	}
	return "cap"
}
