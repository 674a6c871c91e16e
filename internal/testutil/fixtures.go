package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/google/uuid"
)

var testIDCounter atomic.Int64

// NextID hands out unique hierarchy ids for fixtures.
func NextID() int64 {
	return testIDCounter.Add(1)
}

// Estimate options
type EstimateOption func(*domain.Estimate)

func WithEstimateID(id string) EstimateOption {
	return func(e *domain.Estimate) {
		e.ID = id
	}
}

func WithCreatedAt(t time.Time) EstimateOption {
	return func(e *domain.Estimate) {
		e.CreatedAt = t
		e.UpdatedAt = t
	}
}

func NewTestEstimate(name string, opts ...EstimateOption) *domain.Estimate {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Estimate{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Section options
type SectionOption func(*domain.Section)

func WithSectionID(id int64) SectionOption {
	return func(s *domain.Section) {
		s.ID = id
	}
}

func WithDescription(d string) SectionOption {
	return func(s *domain.Section) {
		s.Description = d
	}
}

func WithOptional() SectionOption {
	return func(s *domain.Section) {
		s.IsOptional = true
	}
}

// WithItems appends items, stamping ownership from the section.
func WithItems(items ...domain.Item) SectionOption {
	return func(s *domain.Section) {
		for _, it := range items {
			it.SectionID = s.ID
			it.SectionName = s.Name
			s.Items = append(s.Items, it)
		}
	}
}

// NewTestSection builds a section. Options apply in order, so put
// WithSectionID ahead of WithItems when both are used.
func NewTestSection(name string, opts ...SectionOption) domain.Section {
	s := domain.Section{
		ID:   NextID(),
		Name: name,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Item options
type ItemOption func(*domain.Item)

func WithItemID(id int64) ItemOption {
	return func(it *domain.Item) {
		it.ID = id
	}
}

func WithCost(unitCost string, quantity, markup float64) ItemOption {
	return func(it *domain.Item) {
		it.UnitCost = unitCost
		it.Quantity = quantity
		it.Markup = markup
		it.Total = "₹" + domain.ComputeTotal(unitCost, quantity, markup)
	}
}

func WithZeroCost() ItemOption {
	return func(it *domain.Item) {
		it.UnitCost = "₹0"
		it.Total = "₹0"
		it.Quantity = 0
		it.Markup = 0
	}
}

func WithUnit(u string) ItemOption {
	return func(it *domain.Item) {
		it.Unit = u
	}
}

func WithItemType(t string) ItemOption {
	return func(it *domain.Item) {
		it.ItemTypeName = t
	}
}

func NewTestItem(subject string, opts ...ItemOption) domain.Item {
	it := domain.Item{
		ID:           NextID(),
		Subject:      subject,
		Quantity:     1,
		Unit:         "each",
		UnitCost:     "₹100",
		Total:        "₹100",
		ItemTypeName: "Material",
		DateAdded:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}
