package importer

import (
	"fmt"
	"math"
)

// Validate checks the feed before conversion and returns every problem found.
func Validate(feed *Feed) []error {
	var errs []error

	sectionNames := make(map[int64]string)
	for i, s := range feed.Data.EstimateSection {
		prefix := fmt.Sprintf("EstimateSection[%d]", i)
		if !s.SectionID.Set {
			errs = append(errs, fmt.Errorf("%s.section_id is required", prefix))
			continue
		}
		if err := checkID(prefix+".section_id", s.SectionID); err != nil {
			errs = append(errs, err)
			continue
		}
		id := s.SectionID.Int64()
		if _, dup := sectionNames[id]; dup {
			errs = append(errs, fmt.Errorf("%s.section_id %d is duplicated", prefix, id))
			continue
		}
		sectionNames[id] = s.SectionName
	}

	itemIDs := make(map[int64]int)
	for i, it := range feed.Data.EstimateItem {
		prefix := fmt.Sprintf("EstimateItem[%d]", i)

		if !it.ItemID.Set {
			errs = append(errs, fmt.Errorf("%s.item_id is required", prefix))
		} else if err := checkID(prefix+".item_id", it.ItemID); err != nil {
			errs = append(errs, err)
		} else {
			id := it.ItemID.Int64()
			if first, dup := itemIDs[id]; dup {
				errs = append(errs, fmt.Errorf("%s.item_id %d duplicates EstimateItem[%d]", prefix, id, first))
			} else {
				itemIDs[id] = i
			}
		}

		if !it.SectionID.Set {
			errs = append(errs, fmt.Errorf("%s.section_id is required", prefix))
		} else if err := checkID(prefix+".section_id", it.SectionID); err != nil {
			errs = append(errs, err)
		}

		if it.Quantity.Set && (math.IsNaN(it.Quantity.Value) || math.IsInf(it.Quantity.Value, 0)) {
			errs = append(errs, fmt.Errorf("%s.quantity must be finite", prefix))
		}
	}

	return errs
}

func checkID(field string, n Number) error {
	if n.Value <= 0 || n.Value != math.Trunc(n.Value) || n.Value > math.MaxInt64/2 {
		return fmt.Errorf("%s must be a positive integer, got %v", field, n.Value)
	}
	return nil
}
