package cli

import (
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Manage the sections of an estimate",
	}

	cmd.AddCommand(
		newSectionListCmd(app),
		newSectionAddCmd(app),
		newSectionUpdateCmd(app),
		newSectionRemoveCmd(app),
		newSectionCopyCmd(app),
		newSectionMoveCmd(app),
	)

	return cmd
}

func newSectionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sections in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			sections := grid.Sections()
			if len(sections) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sections yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSectionList(sections))
			return nil
		},
	}
}

func newSectionAddCmd(app *App) *cobra.Command {
	var name, description string
	var optional bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a section at the top of the estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && app.interactive() {
				if err := sectionForm(&name, &description, &optional).Run(); err != nil {
					return err
				}
			}

			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			added, err := grid.AddSection(cmd.Context(), name, description, optional)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added section %s (%d)\n", added.Name, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Section name")
	cmd.Flags().StringVar(&description, "description", "", "Section description")
	cmd.Flags().BoolVar(&optional, "optional", false, "Mark the section optional")

	return cmd
}

func newSectionUpdateCmd(app *App) *cobra.Command {
	var name, description string
	var optional bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename or edit a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}

			var patch domain.SectionPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("optional") {
				patch.IsOptional = &optional
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update (use --name, --description or --optional)")
			}

			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			updated, err := grid.UpdateSection(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated section %s (%d)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().BoolVar(&optional, "optional", false, "Whether the section is optional")

	return cmd
}

func newSectionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a section and its items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			if err := grid.DeleteSection(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed section %d\n", id)
			return nil
		},
	}
}

func newSectionCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID",
		Short: "Duplicate a section with its items, right after the original",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			copied, err := grid.CopySection(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied section %d to %s (%d) with %d item(s)\n",
				id, copied.Name, copied.ID, len(copied.Items))
			return nil
		},
	}
}

func newSectionMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move the section at position FROM to position TO (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			if err := grid.MoveSection(cmd.Context(), from, to); err != nil {
				return err
			}
			moved := grid.Sections()[to]
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", moved.Name, to+1)
			return nil
		},
	}
}
