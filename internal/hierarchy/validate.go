package hierarchy

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
)

// Validate checks the structural invariants of a section sequence: section
// and item IDs are unique store-wide and every item points back at the
// section that holds it. All violations are reported together.
func Validate(sections []domain.Section) error {
	var errs []error
	sectionSeen := make(map[int64]bool, len(sections))
	itemOwner := make(map[int64]int64)

	for _, s := range sections {
		if sectionSeen[s.ID] {
			errs = append(errs, fmt.Errorf("section id %d is duplicated", s.ID))
		}
		sectionSeen[s.ID] = true

		for _, it := range s.Items {
			if owner, dup := itemOwner[it.ID]; dup {
				errs = append(errs, fmt.Errorf("item id %d appears in sections %d and %d", it.ID, owner, s.ID))
			} else {
				itemOwner[it.ID] = s.ID
			}
			if it.SectionID != s.ID {
				errs = append(errs, fmt.Errorf("item %d has section_id %d but is held by section %d", it.ID, it.SectionID, s.ID))
			}
		}
	}
	return errors.Join(errs...)
}
