package importer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/alexanderramin/tally/internal/atomicfile"
	"github.com/alexanderramin/tally/internal/domain"
)

// Export flattens sections back into the feed shape Convert reads, listing
// sections explicitly so order, metadata and empty sections round-trip.
func Export(sections []domain.Section) *Feed {
	feed := &Feed{Data: FeedData{
		EstimateItem:    make([]ItemRecord, 0),
		EstimateSection: make([]SectionRecord, 0, len(sections)),
	}}
	for _, s := range sections {
		rec := SectionRecord{
			SectionID:   Num(float64(s.ID)),
			SectionName: s.Name,
			Description: s.Description,
		}
		if s.IsOptional {
			rec.IsOptional = Num(1)
		}
		feed.Data.EstimateSection = append(feed.Data.EstimateSection, rec)

		for _, it := range s.Items {
			var added string
			if !it.DateAdded.IsZero() {
				added = it.DateAdded.UTC().Format(time.RFC3339)
			}
			feed.Data.EstimateItem = append(feed.Data.EstimateItem, ItemRecord{
				ItemID:       Num(float64(it.ID)),
				SectionID:    Num(float64(s.ID)),
				SectionName:  s.Name,
				Subject:      it.Subject,
				Quantity:     Num(it.Quantity),
				Unit:         it.Unit,
				UnitCost:     it.UnitCost,
				Markup:       Num(it.Markup),
				Total:        it.Total,
				ItemTypeName: it.ItemTypeName,
				DateAdded:    added,
			})
		}
	}
	return feed
}

// Marshal renders a feed as indented JSON.
func Marshal(feed *Feed) ([]byte, error) {
	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding estimate feed: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile exports sections to path atomically.
func WriteFile(path string, sections []domain.Section) error {
	data, err := Marshal(Export(sections))
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, 0)
}

// ExportFileName derives a file name from an estimate name.
func ExportFileName(estimateName string) string {
	base := slug.Make(strings.TrimSpace(estimateName))
	if base == "" {
		base = "estimate"
	}
	return base + ".json"
}
