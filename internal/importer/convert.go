package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/hierarchy"
)

// dateLayouts are the date_added formats accepted on import.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Convert turns a validated feed into an ordered section hierarchy. Call
// Validate first; Convert assumes the feed is valid.
//
// Items are grouped by section_id in first-seen order. When the feed lists
// sections explicitly, that list fixes the order and supplies description
// and optional flags, and sections with no items survive.
func Convert(feed *Feed) []domain.Section {
	items := make([]domain.Item, 0, len(feed.Data.EstimateItem))
	for _, r := range feed.Data.EstimateItem {
		items = append(items, domain.Item{
			ID:           r.ItemID.Int64(),
			SectionID:    r.SectionID.Int64(),
			SectionName:  strings.TrimSpace(r.SectionName),
			Subject:      r.Subject,
			Quantity:     r.Quantity.Value,
			Unit:         r.Unit,
			UnitCost:     r.UnitCost,
			Markup:       r.Markup.Value,
			Total:        r.Total,
			ItemTypeName: r.ItemTypeName,
			DateAdded:    parseDate(r.DateAdded),
		})
	}
	grouped := hierarchy.GroupItems(items)
	if len(feed.Data.EstimateSection) == 0 {
		return grouped
	}

	byID := make(map[int64]domain.Section, len(grouped))
	for _, s := range grouped {
		byID[s.ID] = s
	}

	out := make([]domain.Section, 0, len(grouped)+len(feed.Data.EstimateSection))
	listed := make(map[int64]bool)
	for _, r := range feed.Data.EstimateSection {
		id := r.SectionID.Int64()
		listed[id] = true
		s, ok := byID[id]
		if !ok {
			s = domain.Section{ID: id}
		}
		if name := strings.TrimSpace(r.SectionName); name != "" {
			s.Name = name
			for i := range s.Items {
				s.Items[i].SectionName = name
			}
		}
		s.Description = r.Description
		s.IsOptional = r.IsOptional.Value != 0
		out = append(out, s)
	}
	for _, s := range grouped {
		if !listed[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
