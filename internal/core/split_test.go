package core

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestSplitFloat(t *testing.T) {
	// Sorted, because which participant absorbs the cent carries no meaning.
	cases := []struct {
		total float64
		parts int
		want  []float64
	}{
		{5, 2, []float64{2.5, 2.5}},
		{10, 3, []float64{3.33, 3.33, 3.34}},
		{5, 3, []float64{1.66, 1.67, 1.67}},
		{0, 4, []float64{0, 0, 0, 0}},
		{0.01, 4, []float64{0, 0, 0, 0.01}},
		{0.001, 2, []float64{0, 0}},
		{100, 1, []float64{100}},
		{1, 6, []float64{0.16, 0.16, 0.17, 0.17, 0.17, 0.17}},
	}
	for _, tc := range cases {
		got, err := SplitFloat(tc.total, tc.parts)
		if err != nil {
			t.Fatalf("SplitFloat(%v, %d) unexpected error: %v", tc.total, tc.parts, err)
		}
		slices.Sort(got)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("SplitFloat(%v, %d) mismatch (-want +got):\n%s", tc.total, tc.parts, diff)
		}
	}
}

func TestSplitRejectsNonPositiveParts(t *testing.T) {
	for _, parts := range []int{0, -1, -10} {
		got, err := SplitFloat(10, parts)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("SplitFloat(10, %d) expected ErrInvalidArgument, got %v", parts, err)
		}
		if got != nil {
			t.Fatalf("SplitFloat(10, %d) expected nil shares, got %v", parts, got)
		}
	}
	if _, err := SplitCents(100, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SplitCents expected ErrInvalidArgument, got %v", err)
	}
	if _, err := SplitDecimal(decimal.NewFromInt(1), 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SplitDecimal expected ErrInvalidArgument, got %v", err)
	}
}

func TestSplitCentsInvariants(t *testing.T) {
	totals := []int64{0, 1, 2, 7, 99, 100, 101, 333, 1000, 12345, 99999, 1_000_001}
	for _, n := range totals {
		for parts := 1; parts <= 17; parts++ {
			for _, total := range []int64{n, -n} {
				shares, err := SplitCents(total, parts)
				if err != nil {
					t.Fatalf("SplitCents(%d, %d): %v", total, parts, err)
				}
				if len(shares) != parts {
					t.Fatalf("SplitCents(%d, %d) returned %d shares", total, parts, len(shares))
				}
				var sum int64
				for _, s := range shares {
					sum += s
				}
				if sum != total {
					t.Fatalf("SplitCents(%d, %d) sums to %d", total, parts, sum)
				}
				if spread := slices.Max(shares) - slices.Min(shares); spread > 1 {
					t.Fatalf("SplitCents(%d, %d) spread %d > 1: %v", total, parts, spread, shares)
				}
			}
		}
	}
}

func TestSplitFloatSumIsExact(t *testing.T) {
	for _, total := range []float64{0.07, 1.1, 19.99, 33.333, 250.5, 1234.56} {
		for parts := 1; parts <= 9; parts++ {
			shares, err := SplitFloat(total, parts)
			if err != nil {
				t.Fatalf("SplitFloat(%v, %d): %v", total, parts, err)
			}
			var cents int64
			for _, s := range shares {
				cents += int64(math.Round(s * 100))
			}
			if want := int64(math.Round(total * 100)); cents != want {
				t.Fatalf("SplitFloat(%v, %d) sums to %d cents, want %d", total, parts, cents, want)
			}
		}
	}
}

func TestSplitNegativeMirrorsSign(t *testing.T) {
	got, err := SplitFloat(-10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slices.Sort(got)
	if diff := cmp.Diff([]float64{-3.34, -3.33, -3.33}, got); diff != "" {
		t.Errorf("negative split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitDecimal(t *testing.T) {
	shares, err := SplitDecimal(decimal.RequireFromString("10.00"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	sum := decimal.Zero
	for _, s := range shares {
		got = append(got, s.StringFixed(2))
		sum = sum.Add(s)
	}
	slices.Sort(got)
	if diff := cmp.Diff([]string{"3.33", "3.33", "3.34"}, got); diff != "" {
		t.Errorf("SplitDecimal mismatch (-want +got):\n%s", diff)
	}
	if !sum.Equal(decimal.NewFromInt(10)) {
		t.Errorf("SplitDecimal sums to %s", sum)
	}
}

func TestMoneySplit(t *testing.T) {
	shares, err := Money{Cents: 500}.Split(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Money{{Cents: 166}, {Cents: 167}, {Cents: 167}}
	slices.SortFunc(shares, func(a, b Money) int { return int(a.Cents - b.Cents) })
	if diff := cmp.Diff(want, shares); diff != "" {
		t.Errorf("Money.Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitCentsRange(t *testing.T) {
	for _, n := range []int64{MaxCents, -MaxCents, MaxCents - 1} {
		for _, parts := range []int{1, 2, 3, 7, MaxParts} {
			shares, err := SplitCents(n, parts)
			if err != nil {
				t.Fatalf("SplitCents(%d, %d): %v", n, parts, err)
			}
			var sum int64
			for _, s := range shares {
				sum += s
			}
			if sum != n {
				t.Fatalf("SplitCents(%d, %d) sums to %d", n, parts, sum)
			}
			if spread := slices.Max(shares) - slices.Min(shares); spread > 1 {
				t.Fatalf("SplitCents(%d, %d) spread %d > 1", n, parts, spread)
			}
		}
	}

	for _, n := range []int64{math.MinInt64, math.MaxInt64, MaxCents + 1, -MaxCents - 1} {
		if _, err := SplitCents(n, 3); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("SplitCents(%d, 3) expected ErrInvalidAmount, got %v", n, err)
		}
	}
}

func TestSplitRejectsUnrepresentableTotals(t *testing.T) {
	for _, total := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e20, -1e20} {
		if _, err := SplitFloat(total, 2); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("SplitFloat(%v, 2) expected ErrInvalidAmount, got %v", total, err)
		}
	}

	for _, s := range []string{"100000000000000000000", "-92233720368547758.08", "46116860184273879.04"} {
		if _, err := SplitDecimal(decimal.RequireFromString(s), 3); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("SplitDecimal(%s, 3) expected ErrInvalidAmount, got %v", s, err)
		}
	}

	// the largest accepted amount still splits exactly
	limit := decimal.New(MaxCents, -2)
	shares, err := SplitDecimal(limit, 3)
	if err != nil {
		t.Fatalf("SplitDecimal(%s, 3): %v", limit, err)
	}
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	if !sum.Equal(limit) {
		t.Fatalf("SplitDecimal(%s, 3) sums to %s", limit, sum)
	}
}
