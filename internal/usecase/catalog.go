package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

// DefaultPageLength is the number of recipes added per page.
const DefaultPageLength = 10

// CatalogConfig holds configuration for the recipe catalog
type CatalogConfig struct {
	PageLength int
}

// Query selects a filtered, paginated view of the catalog.
type Query struct {
	Text  string
	Scope domain.SearchScope
	Page  int
}

// Page is the result of evaluating a Query.
type Page struct {
	Recipes    []domain.Recipe `json:"recipes" yaml:"recipes"`
	Page       int             `json:"page" yaml:"page"`
	TotalPages int             `json:"totalPages" yaml:"total_pages"`
	TotalCount int             `json:"totalCount" yaml:"total_count"`
	PageLength int             `json:"pageLength" yaml:"page_length"`
}

// RecipeCatalog holds the fetched recipe list together with the current
// search criteria and page. Pages are cumulative: the displayed view is
// always a prefix of the filtered list that grows by one page at a time.
type RecipeCatalog struct {
	source     domain.RecipeSource
	pageLength int
	log        *slog.Logger

	mu          sync.RWMutex
	recipes     []domain.Recipe
	searchText  string
	searchScope domain.SearchScope
	currentPage int
	loading     bool
	refreshing  int
}

// NewRecipeCatalog creates an empty catalog backed by source.
func NewRecipeCatalog(source domain.RecipeSource, config CatalogConfig, log *slog.Logger) *RecipeCatalog {
	pageLength := config.PageLength
	if pageLength <= 0 {
		pageLength = DefaultPageLength
	}

	return &RecipeCatalog{
		source:      source,
		pageLength:  pageLength,
		log:         logger.Component(log, "catalog"),
		currentPage: 1,
	}
}

// Refresh replaces the whole recipe list with a fresh copy from the source.
// On error the previous list is kept and the error is returned unchanged.
func (c *RecipeCatalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.refreshing++
	c.loading = true
	c.mu.Unlock()

	recipes, err := c.source.FetchRecipes(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshing--
	c.loading = c.refreshing > 0

	if err != nil {
		c.log.WarnContext(ctx, "refresh failed", "error", err)
		return err
	}

	c.recipes = recipes
	c.clampPage()
	c.log.InfoContext(ctx, "catalog refreshed", "recipes", len(recipes))
	return nil
}

// Replace swaps in recipes without contacting the source.
func (c *RecipeCatalog) Replace(recipes []domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recipes = append([]domain.Recipe(nil), recipes...)
	c.clampPage()
}

// SetSearch updates the filter criteria. The current page is kept, only
// lowered when the new filter has fewer pages.
func (c *RecipeCatalog) SetSearch(text string, scope domain.SearchScope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchText = text
	c.searchScope = scope
	c.clampPage()
}

// Search returns the current filter criteria.
func (c *RecipeCatalog) Search() (string, domain.SearchScope) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchText, c.searchScope
}

// Filtered returns the recipes matching the current search, in server order.
func (c *RecipeCatalog) Filtered() []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filterRecipes(c.recipes, c.searchText, c.searchScope)
}

// TotalPages returns the number of pages of the filtered list, 0 when empty.
func (c *RecipeCatalog) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pageCount(len(filterRecipes(c.recipes, c.searchText, c.searchScope)), c.pageLength)
}

// Displayed returns the first CurrentPage pages of the filtered list.
func (c *RecipeCatalog) Displayed() []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return prefix(filterRecipes(c.recipes, c.searchText, c.searchScope), c.currentPage, c.pageLength)
}

// CurrentPage returns the 1-based page index.
func (c *RecipeCatalog) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentPage
}

// Loading reports whether a refresh is in flight.
func (c *RecipeCatalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// ResetPage returns to the first page and clears the loading flag.
func (c *RecipeCatalog) ResetPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPage = 1
	c.loading = false
}

// LoadNextPageIfNeeded widens the displayed prefix by one page. It does
// nothing while loading or when the last page is already displayed.
func (c *RecipeCatalog) LoadNextPageIfNeeded() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return
	}
	total := pageCount(len(filterRecipes(c.recipes, c.searchText, c.searchScope)), c.pageLength)
	if c.currentPage >= total {
		return
	}
	c.currentPage++
}

// PageSlice returns the given 1-based page of the unfiltered list. Pages
// outside the list are empty.
func (c *RecipeCatalog) PageSlice(page int) []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if page <= 0 {
		return []domain.Recipe{}
	}
	start := (page - 1) * c.pageLength
	if start >= len(c.recipes) {
		return []domain.Recipe{}
	}
	end := min(start+c.pageLength, len(c.recipes))
	return append([]domain.Recipe(nil), c.recipes[start:end]...)
}

// Cuisines returns the distinct cuisines of the whole list, sorted.
func (c *RecipeCatalog) Cuisines() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(c.recipes))
	cuisines := make([]string, 0)
	for _, r := range c.recipes {
		if _, ok := seen[r.Cuisine]; ok {
			continue
		}
		seen[r.Cuisine] = struct{}{}
		cuisines = append(cuisines, r.Cuisine)
	}
	sort.Strings(cuisines)
	return cuisines
}

// Recipes returns a copy of the unfiltered list.
func (c *RecipeCatalog) Recipes() []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Recipe(nil), c.recipes...)
}

// PageLength returns the number of recipes per page.
func (c *RecipeCatalog) PageLength() int {
	return c.pageLength
}

// View evaluates q against the current list without touching the stored
// search or page. The page is clamped to the valid range and the result
// holds the cumulative prefix up to that page.
func (c *RecipeCatalog) View(q Query) Page {
	c.mu.RLock()
	filtered := filterRecipes(c.recipes, q.Text, q.Scope)
	c.mu.RUnlock()

	total := pageCount(len(filtered), c.pageLength)
	page := q.Page
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	return Page{
		Recipes:    prefix(filtered, page, c.pageLength),
		Page:       page,
		TotalPages: total,
		TotalCount: len(filtered),
		PageLength: c.pageLength,
	}
}

// clampPage keeps currentPage within [1, TotalPages]. Requires c.mu held
// for writing.
func (c *RecipeCatalog) clampPage() {
	total := pageCount(len(filterRecipes(c.recipes, c.searchText, c.searchScope)), c.pageLength)
	if c.currentPage > total {
		c.currentPage = total
	}
	if c.currentPage < 1 {
		c.currentPage = 1
	}
}

func filterRecipes(recipes []domain.Recipe, text string, scope domain.SearchScope) []domain.Recipe {
	filtered := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Matches(text, scope) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func pageCount(n, pageLength int) int {
	return (n + pageLength - 1) / pageLength
}

func prefix(recipes []domain.Recipe, page, pageLength int) []domain.Recipe {
	return recipes[:min(page*pageLength, len(recipes))]
}
