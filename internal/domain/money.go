package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a display amount such as "₹1,250.50" into a number.
// Currency symbols, grouping separators and whitespace are stripped; anything
// that still fails to parse counts as zero.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			b.WriteRune(r)
		case r == ',' || r == '_' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r):
			// formatting
		default:
			return 0
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// ComputeTotal returns unitCost * quantity + markup, formatted without a
// currency symbol.
func ComputeTotal(unitCost string, quantity, markup float64) string {
	return strconv.FormatFloat(ParseAmount(unitCost)*quantity+markup, 'f', -1, 64)
}
