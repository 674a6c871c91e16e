package domain

import "time"

// Item is a single line entry owned by exactly one Section.
type Item struct {
	ID        int64
	SectionID int64
	// SectionName mirrors the owning section's name.
	SectionName string

	Subject      string
	Quantity     float64
	Unit         string
	UnitCost     string
	Total        string
	Markup       float64
	ItemTypeName string
	DateAdded    time.Time
}

// IsZeroValued reports whether both unit cost and total parse to zero.
func (it Item) IsZeroValued() bool {
	return ParseAmount(it.UnitCost) == 0 && ParseAmount(it.Total) == 0
}

// ItemPatch carries a partial item update. Nil fields are left as-is.
// Ownership fields are deliberately absent: only the transfer engine
// moves an item between sections.
type ItemPatch struct {
	Subject      *string
	Quantity     *float64
	Unit         *string
	UnitCost     *string
	Total        *string
	Markup       *float64
	ItemTypeName *string
}

// Apply returns it with every non-nil patch field written over it.
func (p ItemPatch) Apply(it Item) Item {
	setIf(&it.Subject, p.Subject)
	setIf(&it.Quantity, p.Quantity)
	setIf(&it.Unit, p.Unit)
	setIf(&it.UnitCost, p.UnitCost)
	setIf(&it.Total, p.Total)
	setIf(&it.Markup, p.Markup)
	setIf(&it.ItemTypeName, p.ItemTypeName)
	return it
}
