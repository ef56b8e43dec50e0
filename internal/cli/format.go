// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as US dollars with comma grouping and at
// most two fraction digits, dropping trailing zeros.
// e.g., 4800 -> "$4,800", 12.50 -> "$12.5", -78.35 -> "-$78.35"
func FormatCurrency(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	intPart, frac, _ := strings.Cut(d.String(), ".")
	s := sign + "$" + groupDigits(intPart)
	if frac != "" {
		s += "." + frac
	}
	return s
}

// FormatSigned formats an amount with an explicit sign, as shown for
// income (+) and expenses (-).
func FormatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatCurrency(d)
	}
	return "+" + FormatCurrency(d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage with one decimal place.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatDate formats a date as "Aug 15, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatMonthDay formats a date as "Aug 15".
func FormatMonthDay(t time.Time) string {
	return t.Format("Jan 2")
}

// FormatTime formats a time of day as "2:30 PM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// MaskCard renders the last four digits of a card number behind a mask.
func MaskCard(lastFour string) string {
	return "**** **** **** " + lastFour
}
