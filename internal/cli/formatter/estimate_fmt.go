package formatter

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatEstimateList renders estimates as a boxed table. The estimate whose
// ID equals current is flagged.
func FormatEstimateList(estimates []*domain.Estimate, current string, now time.Time) string {
	headers := []string{"", "ID", "NAME", "UPDATED"}
	rows := make([][]string, 0, len(estimates))
	for _, e := range estimates {
		marker := " "
		if current != "" && e.ID == current {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			e.DisplayID(),
			Bold(e.Name),
			Dim(humanize.RelTime(e.UpdatedAt, now, "ago", "from now")),
		})
	}
	return RenderBox("Estimates", RenderTable(headers, rows))
}
