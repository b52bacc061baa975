// Package core provides money handling and splitting utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents, floats and decimal representations.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitScale is the number of minor units (cents) in one major unit.
const MinorUnitScale = 100

// MaxCents bounds the magnitude of any amount in minor units. Half of the
// int64 range keeps rounding and share arithmetic clear of overflow.
const MaxCents int64 = math.MaxInt64 / 2

// MaxParts is the largest part count accepted from requests and the CLI.
const MaxParts = 10000

var maxAmount = decimal.New(MaxCents, -2)

// ParseAmount parses a decimal string into an exact decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rounds half away from zero to two decimal places. Negative values are
// rejected; zero is a valid amount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,345") -> 12.35, nil
//	ParseAmount("0") -> 0, nil
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "-") {
		return decimal.Zero, fmt.Errorf("%w: %q must not be signed", ErrInvalidAmount, s)
	}
	d, err := ParseSignedAmount(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// ParseSignedAmount is like ParseAmount but keeps the sign and the full
// precision of the input. It suits totals that are split rather than spent.
func ParseSignedAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return d, nil
}

// MoneyFromFloat rounds a float amount to the nearest minor unit.
func MoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, v)
	}
	c := math.Round(v * MinorUnitScale)
	if math.Abs(c) > float64(MaxCents) {
		return Money{}, fmt.Errorf("%w: %v out of range", ErrInvalidAmount, v)
	}
	return moneyFromCents(int64(c))
}

// MoneyFromDecimal rounds a decimal amount to the nearest minor unit.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	c := d.Shift(2).Round(0)
	if c.Abs().GreaterThan(decimal.NewFromInt(MaxCents)) {
		return Money{}, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d)
	}
	return moneyFromCents(c.IntPart())
}

func moneyFromCents(c int64) (Money, error) {
	if c > MaxCents || c < -MaxCents {
		return Money{}, fmt.Errorf("%w: %d minor units out of range", ErrInvalidAmount, c)
	}
	return Money{Cents: c}, nil
}

// Euros returns the euro value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Euros() float64 {
	return float64(m.Cents) / MinorUnitScale
}

// Decimal returns the exact decimal value with two fraction digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with a dot separator, e.g. "12.30".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// MarshalJSON encodes the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalidAmount
	}
	v, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
