package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object for prices and order totals.
// It wraps a fixed-point decimal so that monetary arithmetic is exact and
// reproducible across platforms; binary floating point is never involved.
// All rounding is to 2 decimal places with round-half-up, applied only at
// the documented boundaries (line totals and tax), never on intermediate
// sums.
//
// The zero value is a valid zero amount. Money is immutable: every
// operation returns a new value.
//
// Example usage:
//
//	price, _ := kernel.NewMoneyFromString("12.50")
//	total := price.Times(3)            // 37.50
//	tax := total.ApplyRate(taxRate)    // rounded to 2 places
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a raw decimal.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString parses a decimal string such as "8.50" or "-0.75".
// Returns an error if the string is not a valid decimal number.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// NewMoneyFromCents creates a Money value from an integer number of cents.
func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the sum of two amounts. No rounding is applied.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts. No rounding is applied.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Times multiplies the amount by an integer quantity. No rounding is applied.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ApplyRate multiplies the amount by a rate (e.g. a tax rate of 0.08) and
// rounds the result to 2 decimal places, half-up.
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}.Round()
}

// Round returns the amount rounded to 2 decimal places, half-up.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts by numeric value, so 8.5 equals 8.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal value.
// Intended for persistence mapping and rate arithmetic; domain code should
// prefer the Money operations.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly 2 decimal places, e.g. "118.80".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
