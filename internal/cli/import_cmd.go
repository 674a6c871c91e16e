package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/tally/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var name string
	var use bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create an estimate from a JSON item feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				base := filepath.Base(args[0])
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			result, err := app.Estimates.Import(cmd.Context(), name, feed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s [%s]: %d section(s), %d item(s)\n",
				result.Estimate.Name, result.Estimate.DisplayID(), result.SectionCount, result.ItemCount)
			if result.Renumbered {
				fmt.Fprintln(cmd.OutOrStdout(), "Section and item IDs were already in use and have been renumbered.")
			}
			if use {
				return useEstimate(cmd, app, result.Estimate.ID, result.Estimate.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Estimate name (defaults to the file name)")
	cmd.Flags().BoolVar(&use, "use", false, "Make it the default estimate")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the estimate as a JSON item feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			est := grid.Estimate()
			path := importer.ExportFileName(est.Name)
			if len(args) == 1 {
				path = args[0]
			}
			sections := grid.Sections()
			if err := importer.WriteFile(path, sections); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s (%d section(s))\n", est.Name, path, len(sections))
			return nil
		},
	}
}
