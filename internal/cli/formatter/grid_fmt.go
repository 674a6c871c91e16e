package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
)

// FormatSectionList renders one row per section with its position, which is
// what `section move` takes.
func FormatSectionList(sections []domain.Section) string {
	headers := []string{"#", "ID", "SECTION", "ITEMS", "TOTAL", ""}
	rows := make([][]string, 0, len(sections))
	for i, s := range sections {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			Dim(strconv.FormatInt(s.ID, 10)),
			Bold(s.Name),
			strconv.Itoa(len(s.Items)),
			Money(SectionTotal(s)),
			OptionalBadge(s.IsOptional),
		})
	}
	return RenderTable(headers, rows)
}

// GridOptions controls FormatGrid.
type GridOptions struct {
	// Expanded reports whether a section's items are listed. Nil expands all.
	Expanded func(sectionID int64) bool
	// Items overrides the items shown for a section, e.g. the zero-cost filter.
	Items func(s domain.Section) []domain.Item
	// Hidden is the number of sections not yet paged in.
	Hidden int
}

// FormatGrid renders sections and their items as a tree with right-aligned
// totals.
func FormatGrid(sections []domain.Section, opts GridOptions) string {
	if len(sections) == 0 {
		return Dim("No sections.") + "\n"
	}

	type line struct{ text, amount string }
	var lines []line
	width := 0
	add := func(text, amount string) {
		lines = append(lines, line{text, amount})
		if w := lipgloss.Width(text); w > width {
			width = w
		}
	}

	for _, s := range sections {
		title := fmt.Sprintf("%s %s", Bold(s.Name), Dim(fmt.Sprintf("(%d)", s.ID)))
		if badge := OptionalBadge(s.IsOptional); badge != "" {
			title += " " + badge
		}
		add(title, StyleBlue.Render(Money(SectionTotal(s))))

		if opts.Expanded != nil && !opts.Expanded(s.ID) {
			continue
		}
		items := s.Items
		if opts.Items != nil {
			items = opts.Items(s)
		}
		for i, it := range items {
			prefix := treeBranch
			if i == len(items)-1 {
				prefix = treeCorner
			}
			text := fmt.Sprintf("%s%s %s  %s %s @ %s",
				Dim(prefix), it.Subject, Dim(fmt.Sprintf("#%d", it.ID)),
				Quantity(it.Quantity), it.Unit, MoneyString(it.UnitCost))
			add(text, MoneyString(it.Total))
		}
	}

	var b strings.Builder
	for _, l := range lines {
		pad := max(width-lipgloss.Width(l.text), 0)
		b.WriteString(l.text + strings.Repeat(" ", pad+colGap) + l.amount + "\n")
	}
	b.WriteString(strings.Repeat(" ", width+colGap) + Bold(Money(GrandTotal(sections))) + "\n")
	if opts.Hidden > 0 {
		b.WriteString(Dim(fmt.Sprintf("… %d more section(s)", opts.Hidden)) + "\n")
	}
	return b.String()
}
