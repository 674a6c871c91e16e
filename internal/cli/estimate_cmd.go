package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "estimate",
		Aliases: []string{"est"},
		Short:   "Manage estimates",
	}

	cmd.AddCommand(
		newEstimateCreateCmd(app),
		newEstimateListCmd(app),
		newEstimateRemoveCmd(app),
		newEstimateUseCmd(app),
	)

	return cmd
}

func newEstimateCreateCmd(app *App) *cobra.Command {
	var name string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && len(args) > 0 {
				name = strings.Join(args, " ")
			}
			est, err := app.Estimates.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created estimate %s [%s]\n", est.Name, est.DisplayID())
			if use {
				return useEstimate(cmd, app, est.ID, est.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Estimate name")
	cmd.Flags().BoolVar(&use, "use", false, "Make it the default estimate")

	return cmd
}

func newEstimateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			estimates, err := app.Estimates.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(estimates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No estimates found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimateList(estimates, app.Config.DefaultEstimate, app.now()))
			return nil
		},
	}
}

func newEstimateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an estimate with all its sections and items",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := app.Estimates.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Estimates.Delete(cmd.Context(), est.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed estimate %s [%s]\n", est.Name, est.DisplayID())
			if app.Config.DefaultEstimate == est.ID && app.SaveConfig != nil {
				app.Config.DefaultEstimate = ""
				return app.SaveConfig(app.Config)
			}
			return nil
		},
	}
}

func newEstimateUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use ID",
		Short: "Set the default estimate for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := app.Estimates.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return useEstimate(cmd, app, est.ID, est.Name)
		},
	}
}

func useEstimate(cmd *cobra.Command, app *App, id, name string) error {
	if app.SaveConfig == nil {
		return fmt.Errorf("saving the default estimate is not supported here")
	}
	app.Config.DefaultEstimate = id
	if err := app.SaveConfig(app.Config); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default estimate is now %s\n", name)
	return nil
}
