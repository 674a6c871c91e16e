package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var zero, all, collapsed bool
	var pages int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the estimate grid",
		Long: "Show the estimate grid. Sections are paged in one at a time like the\n" +
			"board does; --page N reveals N sections, --all shows every section.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			grid, err := app.openGrid(ctx)
			if err != nil {
				return err
			}
			defer grid.Close()

			p := grid.Projector()
			sections := p.Grouped()
			if !all {
				for p.DisplayedCount() < pages && p.HasMore() {
					if _, err := p.LoadMore(ctx); err != nil {
						return err
					}
				}
				sections = p.Displayed()
			}

			opts := formatter.GridOptions{Hidden: len(p.Grouped()) - len(sections)}
			if collapsed {
				opts.Expanded = func(int64) bool { return false }
			}
			if zero {
				opts.Items = func(s domain.Section) []domain.Item {
					items, err := p.ZeroItems(s.ID)
					if err != nil {
						return nil
					}
					return items
				}
			}

			est := grid.Estimate()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(est.Name))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGrid(sections, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&zero, "zero", false, "Only list items with zero cost and total")
	cmd.Flags().BoolVar(&all, "all", false, "Show every section")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Hide items, show section totals only")
	cmd.Flags().IntVar(&pages, "page", 1, "Number of sections to reveal")

	return cmd
}
