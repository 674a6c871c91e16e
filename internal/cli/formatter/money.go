package formatter

import (
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/dustin/go-humanize"
)

// CurrencySymbol prefixes rendered amounts.
const CurrencySymbol = "₹"

// Money renders an amount with grouping separators and two decimals,
// e.g. 1250.5 as "₹1,250.50".
func Money(amount float64) string {
	if amount < 0 {
		return "-" + CurrencySymbol + humanize.FormatFloat("#,###.##", -amount)
	}
	return CurrencySymbol + humanize.FormatFloat("#,###.##", amount)
}

// MoneyString parses a stored amount string and renders it with Money.
func MoneyString(s string) string {
	return Money(domain.ParseAmount(s))
}

// SectionTotal sums the totals of every item in s.
func SectionTotal(s domain.Section) float64 {
	var sum float64
	for _, it := range s.Items {
		sum += domain.ParseAmount(it.Total)
	}
	return sum
}

// GrandTotal sums SectionTotal over sections.
func GrandTotal(sections []domain.Section) float64 {
	var sum float64
	for _, s := range sections {
		sum += SectionTotal(s)
	}
	return sum
}

// Quantity renders a quantity without trailing zeros, grouping thousands.
func Quantity(q float64) string {
	return humanize.CommafWithDigits(q, 3)
}
