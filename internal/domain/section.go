package domain

// CopySuffix is appended to the name of a duplicated section.
const CopySuffix = " (Copy)"

// Section is an ordered, named container of items. Item order is render order.
type Section struct {
	ID          int64
	Name        string
	Description string
	IsOptional  bool
	Items       []Item
}

// Clone returns a deep copy of the section, including its item slice.
func (s Section) Clone() Section {
	c := s
	if s.Items != nil {
		c.Items = make([]Item, len(s.Items))
		copy(c.Items, s.Items)
	}
	return c
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (s *Section) ItemIndex(itemID int64) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// SectionPatch carries a partial section update. Nil fields are left as-is.
type SectionPatch struct {
	Name        *string
	Description *string
	IsOptional  *bool
}

// Apply returns s with every non-nil patch field written over it.
func (p SectionPatch) Apply(s Section) Section {
	setIf(&s.Name, p.Name)
	setIf(&s.Description, p.Description)
	setIf(&s.IsOptional, p.IsOptional)
	return s
}

// IsEmpty reports whether the patch changes nothing.
func (p SectionPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.IsOptional == nil
}

// CloneSections deep-copies a section sequence.
func CloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i := range sections {
		out[i] = sections[i].Clone()
	}
	return out
}

// CountItems returns the total number of items across all sections.
func CountItems(sections []Section) int {
	n := 0
	for i := range sections {
		n += len(sections[i].Items)
	}
	return n
}
