package money

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. All ledger arithmetic goes through
// this type so amounts never touch floating point.
type Money = decimal.Decimal

// Zero is the zero amount.
var Zero = decimal.Zero

// New builds a Money from an integer number of currency units.
func New(value int64) Money {
	return decimal.NewFromInt(value)
}

// FromFloat converts a float64 coming from an external boundary (JSON,
// gorm scan) into Money. Internal code should never produce floats.
func FromFloat(value float64) Money {
	return decimal.NewFromFloat(value)
}

// FromString parses a decimal string such as "15000.00".
func FromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal string and panics on failure. Test helper.
func MustFromString(s string) Money {
	return decimal.RequireFromString(s)
}

// Round normalizes an amount to two decimal places for persistence.
func Round(m Money) Money {
	return m.Round(2)
}

// Min returns the smaller of a and b.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}
