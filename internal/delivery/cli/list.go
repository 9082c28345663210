package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/usecase"
)

var (
	searchFlag string
	scopeFlag  string
	pagesFlag  int
)

// NewListCmd creates the list subcommand
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long: `List recipes from the published recipe list.

Pages are cumulative: --pages 2 shows the first twenty matching recipes.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&searchFlag, "search", "s", "", "Case-insensitive search text")
	cmd.Flags().StringVar(&scopeFlag, "scope", "All", "Search scope: All, Cuisine, Name")
	cmd.Flags().IntVarP(&pagesFlag, "pages", "p", 1, "Number of pages to show")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	scope, err := domain.ParseSearchScope(scopeFlag)
	if err != nil {
		return err
	}
	if pagesFlag < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", pagesFlag)
	}

	app, err := NewCatalogApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	catalog := app.Catalog
	if err := catalog.Refresh(cmd.Context()); err != nil {
		return err
	}

	catalog.SetSearch(searchFlag, scope)
	catalog.ResetPage()
	for i := 1; i < pagesFlag; i++ {
		catalog.LoadNextPageIfNeeded()
	}

	recipes := catalog.Displayed()
	page := usecase.Page{
		Recipes:    recipes,
		Page:       catalog.CurrentPage(),
		TotalPages: catalog.TotalPages(),
		TotalCount: len(catalog.Filtered()),
		PageLength: catalog.PageLength(),
	}

	return renderPage(cmd.OutOrStdout(), formatFlag, page)
}
