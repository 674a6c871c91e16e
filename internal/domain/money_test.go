package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"":           0,
		"0":          0,
		"₹0":         0,
		"₹5":         5,
		"₹1,250.50":  1250.5,
		"$ 12":       12,
		"-3.5":       -3.5,
		"  42  ":     42,
		"n/a":        0,
		"12abc":      0,
		"₹":          0,
		"1.2.3":      0,
		"1_000":      1000,
		"€2,000,000": 2000000,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseAmount(in), "ParseAmount(%q)", in)
	}
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, "250", ComputeTotal("₹100", 2, 50))
	assert.Equal(t, "0", ComputeTotal("", 3, 0))
	assert.Equal(t, "7.5", ComputeTotal("2.5", 3, 0))
}

func TestItem_IsZeroValued(t *testing.T) {
	assert.True(t, Item{UnitCost: "₹0", Total: "₹0"}.IsZeroValued())
	assert.True(t, Item{UnitCost: "", Total: "garbage"}.IsZeroValued())
	assert.False(t, Item{UnitCost: "₹5", Total: "₹0"}.IsZeroValued())
	assert.False(t, Item{UnitCost: "0", Total: "1"}.IsZeroValued())
}
