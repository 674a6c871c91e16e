package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/hierarchy"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of an estimate",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
		newItemMoveCmd(app),
	)

	return cmd
}

// itemFlags are the business fields shared by add and update.
type itemFlags struct {
	subject  string
	quantity float64
	unit     string
	unitCost string
	total    string
	markup   float64
	itemType string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.subject, "subject", "", "Item description")
	cmd.Flags().Float64Var(&f.quantity, "qty", 1, "Quantity")
	cmd.Flags().StringVar(&f.unit, "unit", "each", "Unit of measure")
	cmd.Flags().StringVar(&f.unitCost, "cost", "", "Unit cost, e.g. ₹1,250")
	cmd.Flags().StringVar(&f.total, "total", "", "Total (computed from cost, qty and markup when omitted)")
	cmd.Flags().Float64Var(&f.markup, "markup", 0, "Markup added to the total")
	cmd.Flags().StringVar(&f.itemType, "type", "", "Item type, e.g. Material or Labor")
}

// patch builds an ItemPatch from the flags the user set.
func (f *itemFlags) patch(cmd *cobra.Command) domain.ItemPatch {
	var p domain.ItemPatch
	changed := cmd.Flags().Changed
	if changed("subject") {
		p.Subject = &f.subject
	}
	if changed("qty") {
		p.Quantity = &f.quantity
	}
	if changed("unit") {
		p.Unit = &f.unit
	}
	if changed("cost") {
		p.UnitCost = &f.unitCost
	}
	if changed("total") {
		p.Total = &f.total
	}
	if changed("markup") {
		p.Markup = &f.markup
	}
	if changed("type") {
		p.ItemTypeName = &f.itemType
	}
	return p
}

func newItemAddCmd(app *App) *cobra.Command {
	var sectionArg string
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an item to a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := parseID("section", sectionArg)
			if err != nil {
				return err
			}
			if f.subject == "" && app.interactive() {
				if err := promptItem(&f); err != nil {
					return err
				}
			}

			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			added, err := grid.AddItem(cmd.Context(), sectionID, domain.Item{
				Subject:      f.subject,
				Quantity:     f.quantity,
				Unit:         f.unit,
				UnitCost:     f.unitCost,
				Total:        f.total,
				Markup:       f.markup,
				ItemTypeName: f.itemType,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s (%d) to %s\n", added.Subject, added.ID, added.SectionName)
			return nil
		},
	}

	cmd.Flags().StringVar(&sectionArg, "section", "", "Section ID")
	_ = cmd.MarkFlagRequired("section")
	f.register(cmd)

	return cmd
}

func promptItem(f *itemFlags) error {
	qty, markup := "", ""
	if err := itemForm(&f.subject, &qty, &f.unit, &f.unitCost, &markup).Run(); err != nil {
		return err
	}
	if qty != "" {
		f.quantity, _ = strconv.ParseFloat(strings.TrimSpace(qty), 64)
	}
	if markup != "" {
		f.markup, _ = strconv.ParseFloat(strings.TrimSpace(markup), 64)
	}
	return nil
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var sectionName string
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an item's fields in place",
		Long: "Edit an item's fields in place. With --section-name the item is looked up\n" +
			"in the named section and replaced as a whole; ownership never changes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			patch := f.patch(cmd)
			if patch == (domain.ItemPatch{}) {
				return fmt.Errorf("nothing to update (use --subject, --qty, --unit, --cost, --total, --markup or --type)")
			}

			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			var updated domain.Item
			if sectionName != "" {
				updated, err = replaceItemByName(cmd, grid, sectionName, itemID, patch)
			} else {
				si, ii := hierarchy.FindItem(grid.Sections(), itemID)
				if si < 0 {
					return fmt.Errorf("item %d: %w", itemID, domain.ErrItemNotFound)
				}
				sectionID := grid.Sections()[si].Items[ii].SectionID
				updated, err = grid.PatchItem(cmd.Context(), sectionID, itemID, patch)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s (%d)\n", updated.Subject, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sectionName, "section-name", "", "Name of the section holding the item")
	f.register(cmd)

	return cmd
}

func replaceItemByName(cmd *cobra.Command, grid service.GridService, sectionName string, itemID int64, patch domain.ItemPatch) (domain.Item, error) {
	sections := grid.Sections()
	idx, pos, err := hierarchy.LocateByName(sections, sectionName, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	item := patch.Apply(sections[idx].Items[pos])
	if err := grid.UpdateItem(cmd.Context(), sectionName, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var sectionArg string

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			var sectionID int64
			if sectionArg != "" {
				if sectionID, err = parseID("section", sectionArg); err != nil {
					return err
				}
			} else {
				sections := grid.Sections()
				si, _ := hierarchy.FindItem(sections, itemID)
				if si < 0 {
					return fmt.Errorf("item %d: %w", itemID, domain.ErrItemNotFound)
				}
				sectionID = sections[si].ID
			}

			if err := grid.DeleteItem(cmd.Context(), sectionID, itemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", itemID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sectionArg, "section", "", "Section ID (looked up when omitted)")

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	var fromArg, toArg string
	var ids []string
	at := &positionValue{}

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move items between sections or within one",
		Example: "  tally item move --from 1 --to 2 --ids 11,12 --at 1\n" +
			"  tally item move --from 1 --to 1 --ids 12 --at end",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, err := parseID("section", fromArg)
			if err != nil {
				return err
			}
			toID, err := parseID("section", toArg)
			if err != nil {
				return err
			}
			itemIDs, err := parseIDList("item", ids)
			if err != nil {
				return err
			}
			if len(itemIDs) == 0 {
				return fmt.Errorf("no items given (use --ids)")
			}

			grid, err := app.openGrid(cmd.Context())
			if err != nil {
				return err
			}
			defer grid.Close()

			if err := grid.MoveItems(cmd.Context(), fromID, toID, itemIDs, at.Index()); err != nil {
				return err
			}
			moved := countInSection(grid.Sections(), toID, itemIDs)
			if moved == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing moved.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d item(s) from section %d to section %d at position %s\n",
				moved, fromID, toID, at.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&fromArg, "from", "", "Source section ID")
	cmd.Flags().StringVar(&toArg, "to", "", "Target section ID")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Item IDs to move, in order")
	cmd.Flags().Var(at, "at", "1-based position in the target section, or \"end\"")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}

// countInSection counts how many of ids the section with sectionID holds.
func countInSection(sections []domain.Section, sectionID int64, ids []int64) int {
	idx := hierarchy.IndexOf(sections, sectionID)
	if idx < 0 {
		return 0
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if sections[idx].ItemIndex(id) >= 0 {
			seen[id] = true
		}
	}
	return len(seen)
}
