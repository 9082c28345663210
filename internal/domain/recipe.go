package domain

import (
	"strings"

	"github.com/jmgilman/go/errors"
)

// Recipe represents a single recipe as published by the recipe list endpoint.
// Only ID, Name and Cuisine are guaranteed to be present.
type Recipe struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Cuisine       string  `json:"cuisine" yaml:"cuisine"`
	PhotoURLLarge *string `json:"photoUrlLarge,omitempty" yaml:"photo_url_large,omitempty"`
	PhotoURLSmall *string `json:"photoUrlSmall,omitempty" yaml:"photo_url_small,omitempty"`
	SourceURL     *string `json:"sourceUrl,omitempty" yaml:"source_url,omitempty"`
	YoutubeURL    *string `json:"youtubeUrl,omitempty" yaml:"youtube_url,omitempty"`
}

// SearchScope selects which recipe fields a search text is matched against.
type SearchScope int

const (
	// ScopeAll matches the name or the cuisine.
	ScopeAll SearchScope = iota
	// ScopeCuisine matches the cuisine only.
	ScopeCuisine
	// ScopeName matches the name only.
	ScopeName
)

// SearchScopes lists every scope in display order.
var SearchScopes = []SearchScope{ScopeAll, ScopeCuisine, ScopeName}

func (s SearchScope) String() string {
	switch s {
	case ScopeCuisine:
		return "Cuisine"
	case ScopeName:
		return "Name"
	default:
		return "All"
	}
}

// ParseSearchScope converts "All", "Cuisine" or "Name" (any case) to a scope.
// An empty string yields ScopeAll.
func ParseSearchScope(s string) (SearchScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "cuisine":
		return ScopeCuisine, nil
	case "name":
		return ScopeName, nil
	}

	err := errors.Newf(errors.CodeInvalidInput, "unknown search scope %q", s)
	return ScopeAll, errors.WithContext(err, "scope", s)
}

// Matches reports whether the recipe matches the search text within scope.
// The comparison is a case-insensitive substring match; an empty text matches
// every recipe.
func (r Recipe) Matches(text string, scope SearchScope) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	nameHit := strings.Contains(strings.ToLower(r.Name), needle)
	cuisineHit := strings.Contains(strings.ToLower(r.Cuisine), needle)

	switch scope {
	case ScopeCuisine:
		return cuisineHit
	case ScopeName:
		return nameHit
	default:
		return nameHit || cuisineHit
	}
}
