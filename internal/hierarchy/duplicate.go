package hierarchy

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/idalloc"
)

// CopySection builds a duplicate of the section with the given ID: fresh
// section and item IDs, the name suffixed with domain.CopySuffix, and items
// in their original order pointing at the new section. It returns the copy
// and the ID it should be inserted after; use InsertAfter to splice it in.
func CopySection(sections []domain.Section, sourceID int64, alloc idalloc.Allocator) (domain.Section, int64, error) {
	idx := IndexOf(sections, sourceID)
	if idx < 0 {
		return domain.Section{}, 0, fmt.Errorf("copy section %d: %w", sourceID, domain.ErrSectionNotFound)
	}

	src := sections[idx]
	dup := src.Clone()
	dup.ID = alloc.Next()
	dup.Name = src.Name + domain.CopySuffix
	for i := range dup.Items {
		dup.Items[i].ID = alloc.Next()
		dup.Items[i].SectionID = dup.ID
		dup.Items[i].SectionName = dup.Name
	}
	return dup, src.ID, nil
}

// InsertAfter places section immediately after the section with ID afterID.
// The anchor is looked up in the sequence passed in, so a copy computed
// against an older snapshot still lands next to its source.
func InsertAfter(sections []domain.Section, afterID int64, section domain.Section) ([]domain.Section, error) {
	idx := IndexOf(sections, afterID)
	if idx < 0 {
		return nil, fmt.Errorf("insert after section %d: %w", afterID, domain.ErrSectionNotFound)
	}

	out := make([]domain.Section, 0, len(sections)+1)
	out = append(out, domain.CloneSections(sections[:idx+1])...)
	out = append(out, section.Clone())
	out = append(out, domain.CloneSections(sections[idx+1:])...)
	return out, nil
}

// Duplicate is CopySection followed by InsertAfter on the same sequence.
func Duplicate(sections []domain.Section, sourceID int64, alloc idalloc.Allocator) ([]domain.Section, domain.Section, error) {
	dup, afterID, err := CopySection(sections, sourceID, alloc)
	if err != nil {
		return nil, domain.Section{}, err
	}
	out, err := InsertAfter(sections, afterID, dup)
	if err != nil {
		return nil, domain.Section{}, err
	}
	return out, dup, nil
}

// Renumber gives every section and item a fresh ID from alloc, keeping
// order, names and ownership. Used when incoming IDs may already be taken.
func Renumber(sections []domain.Section, alloc idalloc.Allocator) []domain.Section {
	out := domain.CloneSections(sections)
	for si := range out {
		out[si].ID = alloc.Next()
		for ii := range out[si].Items {
			out[si].Items[ii].ID = alloc.Next()
			out[si].Items[ii].SectionID = out[si].ID
		}
	}
	return out
}

// MinID returns the smallest section or item ID, or 0 for an empty tree.
func MinID(sections []domain.Section) int64 {
	var lowest int64
	take := func(id int64) {
		if lowest == 0 || id < lowest {
			lowest = id
		}
	}
	for _, s := range sections {
		take(s.ID)
		for _, it := range s.Items {
			take(it.ID)
		}
	}
	return lowest
}
