package hierarchy

import "github.com/alexanderramin/tally/internal/domain"

// GroupItems builds the section sequence from a flat item list. Sections
// appear in order of first mention; the first SectionName seen for an ID
// names the section and is written back onto every member item.
func GroupItems(items []domain.Item) []domain.Section {
	var sections []domain.Section
	index := make(map[int64]int)
	for _, it := range items {
		idx, ok := index[it.SectionID]
		if !ok {
			idx = len(sections)
			index[it.SectionID] = idx
			sections = append(sections, domain.Section{ID: it.SectionID, Name: it.SectionName})
		}
		it.SectionName = sections[idx].Name
		sections[idx].Items = append(sections[idx].Items, it)
	}
	return sections
}

// Flatten returns every item in render order: section by section.
func Flatten(sections []domain.Section) []domain.Item {
	out := make([]domain.Item, 0, domain.CountItems(sections))
	for i := range sections {
		out = append(out, sections[i].Items...)
	}
	return out
}
