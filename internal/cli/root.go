package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/config"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Estimates service.EstimateService
	Config    config.Config

	// SaveConfig persists Config; nil disables `estimate use`.
	SaveConfig func(config.Config) error

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time

	estimateFlag string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// selectedEstimate is the --estimate flag, falling back to the configured
// default.
func (a *App) selectedEstimate() (string, error) {
	if a.estimateFlag != "" {
		return a.estimateFlag, nil
	}
	if a.Config.DefaultEstimate != "" {
		return a.Config.DefaultEstimate, nil
	}
	return "", fmt.Errorf("no estimate selected (use --estimate or `tally estimate use ID`)")
}

// openGrid opens the selected estimate. Callers must Close the result.
func (a *App) openGrid(ctx context.Context) (service.GridService, error) {
	id, err := a.selectedEstimate()
	if err != nil {
		return nil, err
	}
	return a.Estimates.Open(ctx, id)
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Construction estimate grid: sections, items, reorder and transfer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.estimateFlag, "estimate", "e", "", "Estimate ID or prefix (defaults to default_estimate)")

	root.AddCommand(
		newEstimateCmd(app),
		newSectionCmd(app),
		newItemCmd(app),
		newViewCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newBoardCmd(app),
	)

	return root
}
