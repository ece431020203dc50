// Package money parses user-entered amounts. Both "12.50" and "12,50" are
// accepted so clients in comma-decimal locales can send what the user typed.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for input that is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNotPositive is returned when a positive amount is required.
	ErrNotPositive = errors.New("amount must be a positive number")
	// ErrNegative is returned when a non-negative amount is required.
	ErrNegative = errors.New("amount must be a non-negative number")
)

// Parse converts s to a decimal, treating a single comma as the decimal separator.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") > 1 || (strings.Contains(s, ",") && strings.Contains(s, ".")) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParsePositive parses s and rejects zero and negative values.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// ParseNonNegative parses s and rejects negative values.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	return d, nil
}

// Round2 rounds half away from zero to two decimal places and returns the
// value as a float for JSON output.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
