package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SplitCents divides n minor units into parts shares that sum exactly to n
// and differ from each other by at most one unit.
//
// The leftover units after rounding n/parts to the nearest integer are
// handed out one at a time starting from the first share; which share
// absorbs them carries no meaning. A negative n is split by magnitude and
// every share is negated. |n| must not exceed MaxCents.
func SplitCents(n int64, parts int) ([]int64, error) {
	if parts <= 0 {
		return nil, fmt.Errorf("%w: parts must be at least 1, got %d", ErrInvalidArgument, parts)
	}
	if n > MaxCents || n < -MaxCents {
		return nil, fmt.Errorf("%w: %d minor units out of range", ErrInvalidAmount, n)
	}

	sign := int64(1)
	if n < 0 {
		sign, n = -1, -n
	}

	p := int64(parts)
	part := n / p
	if 2*(n%p) >= p {
		part++
	}
	// remainder is within [-parts/2, parts/2]
	remainder := n - part*p

	step := int64(1)
	if remainder < 0 {
		step, remainder = -1, -remainder
	}

	shares := make([]int64, parts)
	for i := range shares {
		shares[i] = part
		if int64(i) < remainder {
			shares[i] += step
		}
		shares[i] *= sign
	}
	return shares, nil
}

// SplitFloat divides total into parts shares expressed in major units.
// The total is rounded to the nearest cent first; finer precision is lost.
func SplitFloat(total float64, parts int) ([]float64, error) {
	m, err := MoneyFromFloat(total)
	if err != nil {
		return nil, err
	}
	shares, err := m.Split(parts)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(shares))
	for i, s := range shares {
		out[i] = s.Euros()
	}
	return out, nil
}

// Split divides m into parts shares.
func (m Money) Split(parts int) ([]Money, error) {
	cents, err := SplitCents(m.Cents, parts)
	if err != nil {
		return nil, err
	}
	out := make([]Money, len(cents))
	for i, c := range cents {
		out[i] = Money{Cents: c}
	}
	return out, nil
}

// SplitDecimal divides an exact decimal total into parts shares with two
// fraction digits each.
func SplitDecimal(total decimal.Decimal, parts int) ([]decimal.Decimal, error) {
	m, err := MoneyFromDecimal(total)
	if err != nil {
		return nil, err
	}
	shares, err := m.Split(parts)
	if err != nil {
		return nil, err
	}
	out := make([]decimal.Decimal, len(shares))
	for i, s := range shares {
		out[i] = s.Decimal()
	}
	return out, nil
}
