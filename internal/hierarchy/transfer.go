package hierarchy

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/domain"
)

// AppendIndex asks MoveItems to place the batch after the target's last item.
const AppendIndex = -1

// MoveItems relocates a batch of items from one section to another (or to a
// new position within the same section).
//
// The batch is every item of the source whose ID appears in itemIDs, in the
// order given by itemIDs. IDs that are not in the source are skipped. The
// batch is removed from both source and target before being spliced into the
// target at targetIndex, so for a same-section move targetIndex counts
// positions in the list without the moved items. A negative targetIndex
// appends; an index past the end of the filtered target is ErrInvalidIndex.
func MoveItems(sections []domain.Section, fromID, toID int64, itemIDs []int64, targetIndex int) ([]domain.Section, error) {
	fromIdx := IndexOf(sections, fromID)
	if fromIdx < 0 {
		return nil, fmt.Errorf("move items from section %d: %w", fromID, domain.ErrSectionNotFound)
	}
	toIdx := IndexOf(sections, toID)
	if toIdx < 0 {
		return nil, fmt.Errorf("move items to section %d: %w", toID, domain.ErrSectionNotFound)
	}

	out := domain.CloneSections(sections)
	source := &out[fromIdx]
	target := &out[toIdx]

	batch := collectBatch(source.Items, itemIDs)
	if len(batch) == 0 {
		return out, nil
	}

	moved := make(map[int64]bool, len(batch))
	for i := range batch {
		moved[batch[i].ID] = true
		batch[i].SectionID = target.ID
		batch[i].SectionName = target.Name
	}

	source.Items = withoutItems(source.Items, moved)
	remaining := withoutItems(target.Items, moved)

	if targetIndex > len(remaining) {
		return nil, fmt.Errorf("move items to position %d of %d: %w", targetIndex, len(remaining), domain.ErrInvalidIndex)
	}
	if targetIndex < 0 {
		targetIndex = len(remaining)
	}

	items := make([]domain.Item, 0, len(remaining)+len(batch))
	items = append(items, remaining[:targetIndex]...)
	items = append(items, batch...)
	items = append(items, remaining[targetIndex:]...)
	target.Items = items

	return out, nil
}

// collectBatch returns copies of the items named by ids, in ids order.
func collectBatch(items []domain.Item, ids []int64) []domain.Item {
	byID := make(map[int64]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}
	taken := make(map[int64]bool, len(ids))
	var batch []domain.Item
	for _, id := range ids {
		idx, ok := byID[id]
		if !ok || taken[id] {
			continue
		}
		taken[id] = true
		batch = append(batch, items[idx])
	}
	return batch
}

func withoutItems(items []domain.Item, drop map[int64]bool) []domain.Item {
	kept := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	return kept
}
