package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/idalloc"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/alexanderramin/tally/internal/teatest"
	"github.com/alexanderramin/tally/internal/testutil"
	"github.com/alexanderramin/tally/internal/view"
)

func boardGrid(t *testing.T, cfg view.Config) service.GridService {
	t.Helper()
	sections := []domain.Section{
		testutil.NewTestSection("Foundation", testutil.WithSectionID(1),
			testutil.WithItems(
				testutil.NewTestItem("Concrete", testutil.WithItemID(11)),
				testutil.NewTestItem("Rebar", testutil.WithItemID(12), testutil.WithZeroCost()),
			)),
		testutil.NewTestSection("Framing", testutil.WithSectionID(2),
			testutil.WithItems(testutil.NewTestItem("Studs", testutil.WithItemID(21)))),
		testutil.NewTestSection("Roof", testutil.WithSectionID(3)),
	}
	grid := service.NewMemoryGridService(testutil.NewTestEstimate("Garage"), sections,
		idalloc.NewClock(idalloc.WithFloor(100)), cfg)
	t.Cleanup(grid.Close)
	return grid
}

func newBoardDriver(t *testing.T, grid service.GridService) (*teatest.Driver, *boardModel) {
	t.Helper()
	m := newBoardModel(context.Background(), grid)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	return d, m
}

func TestBoard_StartsWithFirstSection(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, m := newBoardDriver(t, grid)

	out := d.View()
	assert.Contains(t, out, "GARAGE")
	assert.Contains(t, out, "Foundation")
	assert.NotContains(t, out, "Framing")
	assert.Contains(t, out, "2 more section(s)")
	assert.Equal(t, 0, m.cursor)
}

func TestBoard_DownAtLastDisplayedLoadsMore(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, m := newBoardDriver(t, grid)

	d.Press("j")
	assert.Equal(t, 2, grid.Projector().DisplayedCount())
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, d.View(), "Framing")

	d.Press("j", "j", "j")
	assert.Equal(t, 3, grid.Projector().DisplayedCount())
	assert.Equal(t, 2, m.cursor)
	assert.False(t, grid.Projector().HasMore())

	d.Press("k", "k", "k")
	assert.Equal(t, 0, m.cursor)
}

func TestBoard_MoveSectionDownAndUp(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, m := newBoardDriver(t, grid)
	d.Press("j")

	d.Press("k", "J")
	assert.Equal(t, []int64{2, 1, 3}, ids(grid.Sections()))
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, d.View(), "Moved Foundation down")

	d.Press("K")
	assert.Equal(t, []int64{1, 2, 3}, ids(grid.Sections()))
	assert.Equal(t, 0, m.cursor)

	// Nothing below the last displayed section to swap with.
	d.Press("j", "J")
	assert.Equal(t, []int64{1, 2, 3}, ids(grid.Sections()))
}

func TestBoard_CopyInsertsAfterSelection(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, _ := newBoardDriver(t, grid)

	d.Press("c")

	sections := grid.Sections()
	require.Len(t, sections, 4)
	assert.Equal(t, "Foundation (Copy)", sections[1].Name)
	assert.Contains(t, d.View(), "Copied Foundation to Foundation (Copy)")
}

func TestBoard_ExpandAndZeroFilter(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, _ := newBoardDriver(t, grid)
	assert.NotContains(t, d.View(), "Concrete")

	d.Press("enter")
	out := d.View()
	assert.Contains(t, out, "Concrete")
	assert.Contains(t, out, "Rebar")

	d.Press("z")
	out = d.View()
	assert.Contains(t, out, "zero-cost items")
	assert.Contains(t, out, "Rebar")
	assert.NotContains(t, out, "Concrete")

	d.Press("enter")
	assert.NotContains(t, d.View(), "Rebar")
}

func TestBoard_ExpandAllConfig(t *testing.T) {
	grid := boardGrid(t, view.Config{Expand: view.ExpandAll})
	d, _ := newBoardDriver(t, grid)

	assert.Contains(t, d.View(), "Concrete")
}

func TestBoard_Quit(t *testing.T) {
	grid := boardGrid(t, view.Config{})
	d, _ := newBoardDriver(t, grid)

	d.Press("q")
	assert.True(t, d.Quitting)
}

func TestBoard_EmptyEstimate(t *testing.T) {
	grid := service.NewMemoryGridService(testutil.NewTestEstimate("Empty"), nil, idalloc.NewClock(), view.Config{})
	t.Cleanup(grid.Close)
	d, m := newBoardDriver(t, grid)

	d.Press("j", "J", "c", "enter")
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, d.View(), "No sections")
	assert.Empty(t, grid.Sections())
}
