// Package money provides a monetary value object stored in minor units.
//
// Balances and transaction amounts are integer counts of the smallest
// currency increment (cents). Integer arithmetic avoids the rounding drift
// that binary floating point introduces into balance bookkeeping.
package money

import (
	"errors"
	"fmt"
	"math"
)

// Decimals is the number of minor-unit digits in the main unit (cents).
const Decimals = 2

// ErrOverflow is returned when an arithmetic operation would exceed the
// representable range of a monetary amount.
var ErrOverflow = errors.New("amount exceeds maximum safe value")

// Money represents a monetary value as an integer amount of minor units.
// The zero value is a valid amount of zero.
type Money struct {
	amount int64
}

// FromMinorUnits creates a Money value from an amount in minor units.
func FromMinorUnits(amount int64) Money {
	return Money{amount: amount}
}

// Zero returns the zero monetary value.
func Zero() Money {
	return Money{}
}

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 {
	return m.amount
}

// Add returns the sum of m and other, or ErrOverflow if the result is not
// representable.
func (m Money) Add(other Money) (Money, error) {
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrOverflow
	}
	return Money{amount: sum}, nil
}

// Sub returns the difference of m and other, or ErrOverflow if the result is
// not representable.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount == math.MinInt64 {
		return Money{}, ErrOverflow
	}
	return m.Add(Money{amount: -other.amount})
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Equals reports whether two amounts are equal.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// String formats the amount in main units, e.g. 1250 minor units as "12.50".
func (m Money) String() string {
	sign := ""
	units := m.amount
	if units < 0 {
		sign = "-"
		units = -units
	}
	divisor := int64(math.Pow10(Decimals))
	return fmt.Sprintf("%s%d.%0*d", sign, units/divisor, Decimals, units%divisor)
}
