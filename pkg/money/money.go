// Package money provides display helpers for monetary decimals.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a decimal as a dollar amount with thousands separators,
// e.g. 1234567.891 -> "$1,234,568". Negative amounts keep a leading minus.
func FormatUSD(d decimal.Decimal) string {
	s := d.StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(group(s))
	return b.String()
}

// Percent renders a fractional rate as a percentage with two decimals,
// e.g. 0.9312 -> "93.12%".
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
