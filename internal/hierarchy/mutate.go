package hierarchy

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
)

// AddSection puts a new section at the top of the sequence.
func AddSection(sections []domain.Section, section domain.Section) ([]domain.Section, error) {
	if IndexOf(sections, section.ID) >= 0 {
		return nil, fmt.Errorf("add section %d: id already in use", section.ID)
	}
	section = section.Clone()
	for i := range section.Items {
		section.Items[i].SectionID = section.ID
		section.Items[i].SectionName = section.Name
	}
	out := make([]domain.Section, 0, len(sections)+1)
	out = append(out, section)
	out = append(out, domain.CloneSections(sections)...)
	return out, nil
}

// UpdateSection applies patch to the section with the given ID. A rename is
// carried into the SectionName of every item the section owns.
func UpdateSection(sections []domain.Section, sectionID int64, patch domain.SectionPatch) ([]domain.Section, error) {
	idx := IndexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("update section %d: %w", sectionID, domain.ErrSectionNotFound)
	}
	out := domain.CloneSections(sections)
	updated := patch.Apply(out[idx])
	for i := range updated.Items {
		updated.Items[i].SectionName = updated.Name
	}
	out[idx] = updated
	return out, nil
}

// DeleteSection removes the section and every item it owns.
func DeleteSection(sections []domain.Section, sectionID int64) ([]domain.Section, error) {
	idx := IndexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("delete section %d: %w", sectionID, domain.ErrSectionNotFound)
	}
	out := make([]domain.Section, 0, len(sections)-1)
	out = append(out, domain.CloneSections(sections[:idx])...)
	out = append(out, domain.CloneSections(sections[idx+1:])...)
	return out, nil
}

// AddItem appends item to the section with the given ID, stamping the
// ownership fields from the section.
func AddItem(sections []domain.Section, sectionID int64, item domain.Item) ([]domain.Section, error) {
	idx := IndexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("add item to section %d: %w", sectionID, domain.ErrSectionNotFound)
	}
	if owner, _ := FindItem(sections, item.ID); owner >= 0 {
		return nil, fmt.Errorf("add item %d: id already in use", item.ID)
	}
	out := domain.CloneSections(sections)
	item.SectionID = out[idx].ID
	item.SectionName = out[idx].Name
	out[idx].Items = append(out[idx].Items, item)
	return out, nil
}

// DeleteItem removes a single item from the section with the given ID.
func DeleteItem(sections []domain.Section, sectionID, itemID int64) ([]domain.Section, error) {
	idx := IndexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("delete item from section %d: %w", sectionID, domain.ErrSectionNotFound)
	}
	pos := sections[idx].ItemIndex(itemID)
	if pos < 0 {
		return nil, fmt.Errorf("delete item %d from section %d: %w", itemID, sectionID, domain.ErrItemNotFound)
	}
	out := domain.CloneSections(sections)
	items := out[idx].Items
	out[idx].Items = append(items[:pos:pos], items[pos+1:]...)
	return out, nil
}

// LocateByName finds an item by ID among every section named sectionName.
// Section names are not unique, so each same-named section is searched in
// order. It returns ErrSectionNotFound when no section has the name and
// ErrItemNotFound when none of them holds the item.
func LocateByName(sections []domain.Section, sectionName string, itemID int64) (int, int, error) {
	named := false
	for i := range sections {
		if sections[i].Name != sectionName {
			continue
		}
		named = true
		if pos := sections[i].ItemIndex(itemID); pos >= 0 {
			return i, pos, nil
		}
	}
	if !named {
		return -1, -1, fmt.Errorf("section %q: %w", sectionName, domain.ErrSectionNotFound)
	}
	return -1, -1, fmt.Errorf("item %d in section %q: %w", itemID, sectionName, domain.ErrItemNotFound)
}

// UpdateItem replaces the business fields of an item, locating it by the
// owning section's name and the item's ID. The ID and ownership fields of
// updated are ignored; the stored item keeps its place and its section.
func UpdateItem(sections []domain.Section, sectionName string, updated domain.Item) ([]domain.Section, error) {
	idx, pos, err := LocateByName(sections, sectionName, updated.ID)
	if err != nil {
		return nil, fmt.Errorf("update %w", err)
	}
	out := domain.CloneSections(sections)
	current := out[idx].Items[pos]
	updated.ID = current.ID
	updated.SectionID = current.SectionID
	updated.SectionName = current.SectionName
	if updated.DateAdded.IsZero() {
		updated.DateAdded = current.DateAdded
	}
	out[idx].Items[pos] = updated
	return out, nil
}

// PatchItem applies a partial update to one item of a section.
func PatchItem(sections []domain.Section, sectionID, itemID int64, patch domain.ItemPatch) ([]domain.Section, error) {
	idx := IndexOf(sections, sectionID)
	if idx < 0 {
		return nil, fmt.Errorf("patch item in section %d: %w", sectionID, domain.ErrSectionNotFound)
	}
	pos := sections[idx].ItemIndex(itemID)
	if pos < 0 {
		return nil, fmt.Errorf("patch item %d in section %d: %w", itemID, sectionID, domain.ErrItemNotFound)
	}
	out := domain.CloneSections(sections)
	out[idx].Items[pos] = patch.Apply(out[idx].Items[pos])
	return out, nil
}

// FindItem returns the section and item positions of itemID, or -1, -1.
func FindItem(sections []domain.Section, itemID int64) (int, int) {
	for si := range sections {
		if pos := sections[si].ItemIndex(itemID); pos >= 0 {
			return si, pos
		}
	}
	return -1, -1
}
