package hierarchy

import (
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSection_Prepends(t *testing.T) {
	in := []domain.Section{sec(1, "A")}

	out, err := AddSection(in, domain.Section{ID: 2, Name: "B", Description: "d", IsOptional: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, sectionIDs(out))
	assert.True(t, out[0].IsOptional)
	assert.Len(t, in, 1)
}

func TestAddSection_DuplicateIDRejected(t *testing.T) {
	_, err := AddSection([]domain.Section{sec(1, "A")}, domain.Section{ID: 1, Name: "B"})
	require.Error(t, err)
}

func TestUpdateSection_RenamePropagatesToItems(t *testing.T) {
	in := []domain.Section{sec(1, "Old", 1, 2)}
	name := "New"

	out, err := UpdateSection(in, 1, domain.SectionPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", out[0].Name)
	for _, it := range out[0].Items {
		assert.Equal(t, "New", it.SectionName)
	}
	assert.Equal(t, "Old", in[0].Items[0].SectionName)
}

func TestUpdateSection_NotFound(t *testing.T) {
	_, err := UpdateSection(nil, 1, domain.SectionPatch{})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestDeleteSection_DiscardsItems(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1, 2), sec(2, "B", 3)}

	out, err := DeleteSection(in, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, sectionIDs(out))
	assert.Equal(t, 1, domain.CountItems(out))

	_, err = DeleteSection(out, 1)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestAddItem_AppendsWithOwnership(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1)}

	out, err := AddItem(in, 1, domain.Item{ID: 2, SectionID: 99, SectionName: "wrong", Subject: "Paint"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, itemIDs(out[0]))
	assert.Equal(t, int64(1), out[0].Items[1].SectionID)
	assert.Equal(t, "A", out[0].Items[1].SectionName)
	requireValid(t, out)
}

func TestAddItem_Errors(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1), sec(2, "B")}

	_, err := AddItem(in, 3, domain.Item{ID: 5})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)

	_, err = AddItem(in, 2, domain.Item{ID: 1})
	require.Error(t, err, "item ids are unique store-wide")
}

func TestDeleteItem(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1, 2, 3)}

	out, err := DeleteItem(in, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, itemIDs(out[0]))
	assert.Equal(t, []int64{1, 2, 3}, itemIDs(in[0]))

	_, err = DeleteItem(in, 1, 9)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = DeleteItem(in, 4, 1)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestUpdateItem_BySectionName(t *testing.T) {
	added := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []domain.Section{sec(1, "A", 1), sec(2, "B", 2)}
	in[1].Items[0].DateAdded = added

	out, err := UpdateItem(in, "B", domain.Item{ID: 2, SectionID: 1, SectionName: "A", Subject: "Gutters", Total: "₹90"})
	require.NoError(t, err)

	got := out[1].Items[0]
	assert.Equal(t, "Gutters", got.Subject)
	assert.Equal(t, "₹90", got.Total)
	assert.Equal(t, int64(2), got.SectionID, "caller cannot move the item through an update")
	assert.Equal(t, "B", got.SectionName)
	assert.Equal(t, added, got.DateAdded)
	requireValid(t, out)
}

func TestUpdateItem_Errors(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1)}

	_, err := UpdateItem(in, "Z", domain.Item{ID: 1})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)

	_, err = UpdateItem(in, "A", domain.Item{ID: 2})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateItem_SearchesEverySectionWithTheName(t *testing.T) {
	in := []domain.Section{sec(1, "Foundation", 10), sec(2, "Foundation", 20), sec(3, "Roof", 30)}

	out, err := UpdateItem(in, "Foundation", domain.Item{ID: 20, Subject: "Footings"})
	require.NoError(t, err)

	assert.Equal(t, "Footings", out[1].Items[0].Subject)
	assert.Equal(t, int64(2), out[1].Items[0].SectionID)
	assert.Equal(t, "item", out[0].Items[0].Subject)
	requireValid(t, out)

	_, err = UpdateItem(in, "Foundation", domain.Item{ID: 30})
	assert.ErrorIs(t, err, domain.ErrItemNotFound, "an item in a differently named section is not reachable")
}

func TestLocateByName(t *testing.T) {
	in := []domain.Section{sec(1, "Foundation", 10), sec(2, "Foundation", 20, 21)}

	idx, pos, err := LocateByName(in, "Foundation", 21)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, pos)

	_, _, err = LocateByName(in, "Deck", 10)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestPatchItem(t *testing.T) {
	in := []domain.Section{sec(1, "A", 1, 2)}
	cost := "₹0"

	out, err := PatchItem(in, 1, 2, domain.ItemPatch{UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, "₹0", out[0].Items[1].UnitCost)
	assert.Equal(t, "₹10", out[0].Items[1].Total)

	_, err = PatchItem(in, 1, 3, domain.ItemPatch{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
