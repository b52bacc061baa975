package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	DefaultLocale   = "es-ES"
	DefaultCurrency = "EUR"

	nbsp       = "\u00a0"
	narrowNbsp = "\u202f"
)

type localeConventions struct {
	decimal     string
	group       string
	minGrouping int  // digits needed in the integer part, beyond the first group, before grouping kicks in
	symbolAfter bool // "12,00 €" instead of "€12.00"
}

var conventions = map[string]localeConventions{
	"en": {decimal: ".", group: ",", minGrouping: 1},
	"es": {decimal: ",", group: ".", minGrouping: 2, symbolAfter: true},
	"it": {decimal: ",", group: ".", minGrouping: 1, symbolAfter: true},
	"de": {decimal: ",", group: ".", minGrouping: 1, symbolAfter: true},
	"fr": {decimal: ",", group: narrowNbsp, minGrouping: 1, symbolAfter: true},
	"pt": {decimal: ",", group: nbsp, minGrouping: 2, symbolAfter: true},
}

var symbols = map[string]string{
	"EUR": "€",
	"GBP": "£",
	"USD": "$",
}

// formatConfig is the resolved set of options.
type formatConfig struct {
	locale   string
	currency string
	digits   int // -1 means the currency's standard scale
}

// FormatOption overrides one of the formatter defaults.
type FormatOption func(*formatConfig)

// WithLocale sets the BCP 47 locale, e.g. "it-IT".
func WithLocale(tag string) FormatOption {
	return func(c *formatConfig) { c.locale = tag }
}

// WithCurrency sets the ISO 4217 currency code, e.g. "USD".
func WithCurrency(code string) FormatOption {
	return func(c *formatConfig) { c.currency = code }
}

// WithMinorUnitDigits sets the number of fraction digits shown.
func WithMinorUnitDigits(d int) FormatOption {
	return func(c *formatConfig) { c.digits = d }
}

// CurrencyFormatter renders amounts for one locale and currency.
// It is immutable and safe for concurrent use.
type CurrencyFormatter struct {
	tag    language.Tag
	unit   currency.Unit
	digits int
	conv   localeConventions
	symbol string
}

// NewCurrencyFormatter resolves the options on top of the es-ES/EUR defaults.
// Locale and currency parse errors are returned unchanged.
func NewCurrencyFormatter(opts ...FormatOption) (*CurrencyFormatter, error) {
	cfg := formatConfig{locale: DefaultLocale, currency: DefaultCurrency, digits: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	tag, err := language.Parse(cfg.locale)
	if err != nil {
		return nil, err
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(cfg.currency)))
	if err != nil {
		return nil, err
	}

	digits := cfg.digits
	if digits < 0 {
		digits, _ = currency.Standard.Rounding(unit)
	}
	if digits > 8 {
		return nil, fmt.Errorf("%w: minor unit digits must be between 0 and 8, got %d", ErrInvalidArgument, digits)
	}

	base, _ := tag.Base()
	conv, ok := conventions[base.String()]
	if !ok {
		conv = conventions["en"]
	}
	symbol, ok := symbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}

	return &CurrencyFormatter{tag: tag, unit: unit, digits: digits, conv: conv, symbol: symbol}, nil
}

// Locale returns the resolved locale tag.
func (f *CurrencyFormatter) Locale() string { return f.tag.String() }

// Currency returns the ISO 4217 code.
func (f *CurrencyFormatter) Currency() string { return f.unit.String() }

// Format renders a float amount. NaN and infinities are rejected.
func (f *CurrencyFormatter) Format(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrInvalidAmount
	}
	return f.FormatDecimal(decimal.NewFromFloat(amount)), nil
}

// FormatMoney renders an amount held in cents.
func (f *CurrencyFormatter) FormatMoney(m Money) string {
	return f.FormatDecimal(m.Decimal())
}

// FormatDecimal renders an exact decimal amount, rounding half away from
// zero to the configured number of fraction digits.
func (f *CurrencyFormatter) FormatDecimal(d decimal.Decimal) string {
	d = d.Round(int32(f.digits))
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(int32(f.digits))

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	number := f.group(intPart)
	if fracPart != "" {
		number += f.conv.decimal + fracPart
	}

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if f.conv.symbolAfter {
		b.WriteString(number)
		b.WriteString(nbsp)
		b.WriteString(f.symbol)
	} else {
		b.WriteString(f.symbol)
		if len(f.symbol) > 1 && f.symbol == f.unit.String() {
			b.WriteString(nbsp)
		}
		b.WriteString(number)
	}
	return b.String()
}

func (f *CurrencyFormatter) group(digits string) string {
	if len(digits) < 3+f.conv.minGrouping {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(f.conv.group)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCurrency formats amount with the given options layered on the
// es-ES/EUR defaults.
func FormatCurrency(amount float64, opts ...FormatOption) (string, error) {
	f, err := NewCurrencyFormatter(opts...)
	if err != nil {
		return "", err
	}
	return f.Format(amount)
}
