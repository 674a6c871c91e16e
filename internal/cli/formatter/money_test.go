package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/tally/internal/domain"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "₹0.00"},
		{"grouped", 1250.5, "₹1,250.50"},
		{"millions", 1234567.891, "₹1,234,567.89"},
		{"negative", -42, "-₹42.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.in))
		})
	}
}

func TestMoneyString_ParsesStoredAmounts(t *testing.T) {
	assert.Equal(t, "₹1,250.50", MoneyString("₹1,250.5"))
	assert.Equal(t, "₹0.00", MoneyString("n/a"))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "10", Quantity(10))
	assert.Equal(t, "2.5", Quantity(2.5))
	assert.Equal(t, "1,500", Quantity(1500))
}

func TestTotals(t *testing.T) {
	sections := []domain.Section{
		{ID: 1, Items: []domain.Item{{Total: "100"}, {Total: "₹50.25"}}},
		{ID: 2},
		{ID: 3, Items: []domain.Item{{Total: "bad"}, {Total: "9.75"}}},
	}
	assert.InDelta(t, 150.25, SectionTotal(sections[0]), 1e-9)
	assert.Zero(t, SectionTotal(sections[1]))
	assert.InDelta(t, 160, GrandTotal(sections), 1e-9)
}
