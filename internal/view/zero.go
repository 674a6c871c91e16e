package view

import "github.com/alexanderramin/tally/internal/domain"

// FilterZero returns a new slice holding the items whose unit cost and total
// both parse to zero. items is never modified.
func FilterZero(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0)
	for _, it := range items {
		if it.IsZeroValued() {
			out = append(out, it)
		}
	}
	return out
}
