// Package recipeapi reads the published recipe list through a domain.Fetcher.
package recipeapi

import (
	"context"
	"log/slog"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

// DefaultListURL is the published recipe list.
const DefaultListURL = "https://d3jbb8n5wk0qxi.cloudfront.net/recipes.json"

// Compile-time interface check.
var _ domain.RecipeSource = (*Source)(nil)

// Source fetches and maps the recipe list.
type Source struct {
	fetcher domain.Fetcher
	listURL string
	log     *slog.Logger
}

// NewSource creates a source reading listURL. An empty listURL selects
// DefaultListURL.
func NewSource(fetcher domain.Fetcher, listURL string, log *slog.Logger) *Source {
	if listURL == "" {
		listURL = DefaultListURL
	}
	return &Source{
		fetcher: fetcher,
		listURL: listURL,
		log:     logger.Component(log, "recipeapi"),
	}
}

// ListURL returns the endpoint this source reads.
func (s *Source) ListURL() string {
	return s.listURL
}

// FetchRecipes fetches the list and returns it in server order. Fetch and
// decode errors are returned unchanged.
func (s *Source) FetchRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var body recipeListDTO
	if err := s.fetcher.FetchJSON(ctx, s.listURL, &body); err != nil {
		return nil, err
	}

	recipes, err := MapRecipes(body)
	if err != nil {
		s.log.WarnContext(ctx, "recipe list rejected", "url", s.listURL, "error", err)
		return nil, err
	}

	s.log.InfoContext(ctx, "recipe list fetched", "count", len(recipes))
	return recipes, nil
}
