package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency is the settlement currency of the marketplace.
const Currency = "ZAR"

// moneyScale is the number of decimal places kept for amounts (cents).
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or a Money constructor")

// Money is a non-negative amount in Currency, held as an exact decimal
// rounded to cents so sums never drift.
//
// Example:
//
//	item, _ := kernel.MoneyFromString("250.00")
//	fee, _ := kernel.MoneyFromString("95.00")
//	item.Add(fee).String() // "345.00"
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount to cents and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromString parses a decimal string such as "95.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MoneyFromMinorUnits builds Money from an amount in cents.
func MoneyFromMinorUnits(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -moneyScale))
}

// ZeroMoney returns a valid zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate ensures the Money was built through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns the exact sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Decimal exposes the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// MinorUnits returns the amount in cents, the unit payment gateways expect.
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(moneyScale).IntPart()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amounts, ignoring representation differences such as 95 vs 95.00.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with two decimals, e.g. "345.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// Format renders the amount with its currency for messages.
func (m Money) Format() string {
	return fmt.Sprintf("%s %s", Currency, m.String())
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s is negative", amount.String()))
	}
	m.amount = amount.Round(moneyScale)
	return nil
}
