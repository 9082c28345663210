package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCuisinesCmd creates the cuisines subcommand
func NewCuisinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cuisines",
		Short: "List the distinct cuisines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewCatalogApp()
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}

			if err := app.Catalog.Refresh(cmd.Context()); err != nil {
				return err
			}

			return renderCuisines(cmd.OutOrStdout(), formatFlag, app.Catalog.Cuisines())
		},
	}
}
