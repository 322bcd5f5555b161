package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for monetary amounts.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney or MoneyFromString")

// Money is a non-negative monetary amount. Arithmetic stays in decimal so sums of
// prices never pick up binary floating point drift; rounding to MoneyScale happens
// only where a caller asks for it.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates that amount is not negative.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("30.00"))
//	if err != nil {
//	    return err // price is negative
//	}
func NewMoney(amount decimal.Decimal) (Money, error) {
	return newMoney("amount", amount)
}

// MoneyFromString parses a decimal literal such as "99.90".
func MoneyFromString(s string) (Money, error) {
	return ParseMoney("amount", s)
}

// ParseMoney parses a decimal literal submitted for the named field. Errors name
// paramName: a blank value is required, a malformed or negative one is invalid.
//
// Example:
//
//	price, err := kernel.ParseMoney("price", body.Price)
func ParseMoney(paramName, s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError(paramName)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return newMoney(paramName, amount)
}

func newMoney(paramName string, amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// ZeroMoney returns a valid zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the exact amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts numerically, so 30 equals 30.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with MoneyScale decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
