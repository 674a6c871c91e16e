package hierarchy

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
)

// MoveSection removes the section at from and inserts it at to, where to is
// interpreted against the sequence with the moved section already removed.
// Indices outside [0, len) are rejected rather than clamped.
func MoveSection(sections []domain.Section, from, to int) ([]domain.Section, error) {
	n := len(sections)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("move section from %d of %d: %w", from, n, domain.ErrInvalidIndex)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("move section to %d of %d: %w", to, n, domain.ErrInvalidIndex)
	}

	out := domain.CloneSections(sections)
	if from == to {
		return out, nil
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]domain.Section{moved}, out[to:]...)...)
	return out, nil
}

// IndexOf returns the position of the section with the given ID, or -1.
func IndexOf(sections []domain.Section, sectionID int64) int {
	for i := range sections {
		if sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}
