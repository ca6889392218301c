// Package core provides the portfolio data contracts and display formatting.
//
// This file contains the number and date formatters used by the views.
// Numbers use compact notation (K, M, B, T) with three significant digits
// and the locale's decimal separator; dates render as "Month Day, Year".
package core

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is the locale used by FormatDigitValue.
var DefaultLocale = language.BritishEnglish

// InvalidDate is rendered when a date string cannot be parsed.
const InvalidDate = "Invalid Date"

const significantDigits = 3

var compactSuffixes = []string{"", "K", "M", "B", "T"}

// dateLayouts lists the accepted input layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Formatter renders numbers for a specific locale.
type Formatter struct {
	decimal string
}

// NewFormatter creates a formatter bound to the given locale.
func NewFormatter(tag language.Tag) *Formatter {
	p := message.NewPrinter(tag)
	decimal := strings.TrimFunc(p.Sprintf("%.1f", 0.5), unicode.IsDigit)
	if decimal == "" {
		decimal = "."
	}
	return &Formatter{decimal: decimal}
}

var defaultFormatter = NewFormatter(DefaultLocale)

// FormatDigitValue formats value in compact notation with the default locale.
//
// Examples:
//
//	FormatDigitValue(1234)    -> "1.23K"
//	FormatDigitValue(12345)   -> "12.3K"
//	FormatDigitValue(5)       -> "5.00"
//	FormatDigitValue(2.5e9)   -> "2.50B"
func FormatDigitValue(value float64) string {
	return defaultFormatter.Digit(value)
}

// FormatDateValue formats an ISO date as "January 2, 2006".
func FormatDateValue(date string) string {
	return defaultFormatter.Date(date)
}

// Digit formats value in compact notation with three significant digits.
// The mantissa never carries group separators, so 1e15 renders as "1000T".
func (f *Formatter) Digit(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "∞"
	case math.IsInf(value, -1):
		return "-∞"
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	digits, exp := significand(value)
	unit := 0
	if exp >= 3 {
		unit = min(exp/3, len(compactSuffixes)-1)
	}
	return sign + f.place(digits, exp-3*unit+1) + compactSuffixes[unit]
}

// place writes the three significant digits with intDigits digits before the
// decimal separator, padding with zeros on either side.
func (f *Formatter) place(digits string, intDigits int) string {
	switch {
	case intDigits <= 0:
		return "0" + f.decimal + strings.Repeat("0", -intDigits) + digits
	case intDigits < significantDigits:
		return digits[:intDigits] + f.decimal + digits[intDigits:]
	default:
		return digits + strings.Repeat("0", intDigits-significantDigits)
	}
}

// Date parses date with the accepted layouts and renders it in English.
// Parsing ignores any zone offset for the calendar day, so "2023-05-01"
// is always May 1 regardless of the server's timezone.
func (f *Formatter) Date(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return InvalidDate
	}
	return t.Format("January 2, 2006")
}

// ParseDate tries each accepted layout and reports whether one matched.
func ParseDate(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// significand rounds v (non-negative, finite) to three significant digits
// and returns them with the base-10 exponent of the leading digit.
func significand(v float64) (string, int) {
	if v == 0 {
		return "000", 0
	}

	exp := magnitude(v)
	n := math.Round(scaleDown(v, exp-(significantDigits-1)))
	// Rounding can carry into the next power of ten (999.95 -> 1000).
	if n >= 1000 {
		n = math.Round(n / 10)
		exp++
	}
	return strconv.Itoa(int(n)), exp
}

// scaleDown returns v / 10^exp without overflowing or underflowing the
// power of ten at the ends of the float64 range.
func scaleDown(v float64, exp int) float64 {
	switch {
	case exp > 300:
		return v / 1e300 / math.Pow10(exp-300)
	case exp < -300:
		return v * 1e300 / math.Pow10(exp+300)
	default:
		return v / math.Pow10(exp)
	}
}

// magnitude returns the base-10 exponent of v. math.Log10 is not exact on
// powers of ten, so the estimate is corrected against math.Pow10.
func magnitude(v float64) int {
	exp := int(math.Floor(math.Log10(v)))
	if math.Pow10(exp+1) <= v {
		exp++
	}
	if math.Pow10(exp) > v {
		exp--
	}
	return exp
}
