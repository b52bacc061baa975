package http

import (
	"fmt"
	"strings"

	"github.com/auburus/expense-splitter/internal/core"
)

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// formatterFor layers per-request overrides on top of the server default.
// With no overrides the default itself is returned; other combinations are
// cached since building a formatter parses the locale and currency.
func (s *Server) formatterFor(p FormatParams) (*core.CurrencyFormatter, error) {
	if p.Locale == "" && p.Currency == "" && p.Digits == nil {
		return s.formatter, nil
	}
	if p.Locale == "" {
		p.Locale = s.formatter.Locale()
	}
	if p.Currency == "" {
		p.Currency = s.formatter.Currency()
	}
	digits := -1
	if p.Digits != nil {
		digits = *p.Digits
	}

	key := fmt.Sprintf("%s|%s|%d", p.Locale, strings.ToUpper(p.Currency), digits)
	return s.formatters.GetOrCreate(key, func() (*core.CurrencyFormatter, error) {
		opts := []core.FormatOption{core.WithLocale(p.Locale), core.WithCurrency(p.Currency)}
		if digits >= 0 {
			opts = append(opts, core.WithMinorUnitDigits(digits))
		}
		return core.NewCurrencyFormatter(opts...)
	})
}

func formatAll(f *core.CurrencyFormatter, amounts []core.Money) []string {
	out := make([]string, len(amounts))
	for i, m := range amounts {
		out[i] = f.FormatMoney(m)
	}
	return out
}
