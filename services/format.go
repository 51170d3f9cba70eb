package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a money value with thousands separators and exactly
// two decimal places, e.g. 1234567.8 -> "1,234,567.80". Negative values keep
// the standard leading minus; no parentheses convention.
func FormatAmount(d decimal.Decimal) string {
	raw := d.StringFixed(2)

	negative := strings.HasPrefix(raw, "-")
	if negative {
		raw = raw[1:]
	}

	parts := strings.SplitN(raw, ".", 2)
	result := groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
