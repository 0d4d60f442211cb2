// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default locale and currency, matching the calculator's original audience.
const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Money formats amounts for one locale and currency.
type Money struct {
	printer *message.Printer
	code    string
	symbol  string
}

// NewMoney builds a formatter for a BCP 47 locale and an ISO 4217 code.
func NewMoney(locale, code string) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}

	iso := unit.String()
	symbol, ok := currencySymbols[iso]
	if !ok {
		symbol = iso + " "
	}

	return &Money{
		printer: message.NewPrinter(tag),
		code:    iso,
		symbol:  symbol,
	}, nil
}

// TrimSymbol removes a leading currency symbol, either the active one or
// any symbol this package knows, and reports whether one was found.
func TrimSymbol(s string) (string, bool) {
	if sym := strings.TrimSpace(active.symbol); sym != "" && strings.HasPrefix(s, sym) {
		return strings.TrimSpace(strings.TrimPrefix(s, sym)), true
	}
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			return strings.TrimSpace(strings.TrimPrefix(s, sym)), true
		}
	}
	return s, false
}

// Code returns the ISO currency code.
func (m *Money) Code() string { return m.code }

// Symbol returns the display symbol, e.g. "₹".
func (m *Money) Symbol() string { return m.symbol }

// Format renders v with the currency symbol and no fraction digits.
func (m *Money) Format(v float64) string {
	if v < 0 {
		return "-" + m.Format(-v)
	}
	return m.symbol + m.printer.Sprint(number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Percent renders a 0-100 value with at most one fraction digit.
func (m *Money) Percent(v float64) string {
	return m.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + "%"
}

var active = mustMoney(DefaultLocale, DefaultCurrency)

func mustMoney(locale, code string) *Money {
	m, err := NewMoney(locale, code)
	if err != nil {
		panic(err)
	}
	return m
}

// Configure replaces the package-level formatter used by FormatCurrency
// and FormatPercent. The previous formatter stays active on error.
func Configure(locale, code string) error {
	m, err := NewMoney(locale, code)
	if err != nil {
		return err
	}
	active = m
	return nil
}

// Active returns the package-level money formatter.
func Active() *Money { return active }

// FormatCurrency formats a currency amount with the active locale.
// e.g., 5250000 -> "₹52,50,000" (en-IN) or "$5,250,000" (en-US)
func FormatCurrency(v float64) string {
	return active.Format(v)
}

// FormatPercent formats a 0-100 percentage.
// e.g., 5.6603 -> "5.7%"
func FormatPercent(v float64) string {
	return active.Percent(v)
}

// FormatCompact formats chart axis values.
// e.g., 1234567 -> "1.2M", 50000 -> "50K", 999 -> "999"
// Values that would round up to 1000 of a unit take the next unit, so
// 999999 is "1.0M" rather than "1000K".
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 999_950_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 999_500:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.0fK", v/1_000)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Number renders an integer with the locale's digit grouping.
func (m *Money) Number(n int64) string {
	return m.printer.Sprint(number.Decimal(n))
}

// FormatNumber groups an integer's digits the same way FormatCurrency does.
// e.g., 1234567 -> "12,34,567" (en-IN) or "1,234,567" (en-US)
func FormatNumber(n int64) string {
	return active.Number(n)
}

// FormatRate formats an input rate such as a growth or conversion percentage.
// Whole numbers drop the decimal: 15 -> "15%", 2.5 -> "2.5%".
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// FormatMonths returns "1 month" or "N months".
func FormatMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
