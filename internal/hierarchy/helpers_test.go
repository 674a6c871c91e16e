package hierarchy

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/idalloc"
	"github.com/stretchr/testify/require"
)

// sec builds a section whose items carry consistent ownership fields.
func sec(id int64, name string, itemIDs ...int64) domain.Section {
	s := domain.Section{ID: id, Name: name}
	for _, iid := range itemIDs {
		s.Items = append(s.Items, domain.Item{
			ID:          iid,
			SectionID:   id,
			SectionName: name,
			Subject:     "item",
			Quantity:    float64(iid),
			UnitCost:    "₹10",
			Total:       "₹10",
		})
	}
	return s
}

func itemIDs(s domain.Section) []int64 {
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func sectionIDs(sections []domain.Section) []int64 {
	ids := make([]int64, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func testAlloc() *idalloc.Clock {
	return idalloc.NewClock(idalloc.WithFloor(1000), idalloc.WithClock(func() time.Time {
		return time.UnixMilli(0)
	}))
}

func requireValid(t *testing.T, sections []domain.Section) {
	t.Helper()
	require.NoError(t, Validate(sections))
}
