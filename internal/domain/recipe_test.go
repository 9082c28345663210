package domain

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchScope(t *testing.T) {
	tests := []struct {
		input string
		want  SearchScope
	}{
		{"", ScopeAll},
		{"All", ScopeAll},
		{"all", ScopeAll},
		{"Cuisine", ScopeCuisine},
		{" CUISINE ", ScopeCuisine},
		{"name", ScopeName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSearchScope(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown scope", func(t *testing.T) {
		_, err := ParseSearchScope("ingredient")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, CodeOf(err))
	})
}

func TestSearchScopeString(t *testing.T) {
	for _, s := range SearchScopes {
		parsed, err := ParseSearchScope(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestRecipeMatches(t *testing.T) {
	apam := Recipe{ID: "1", Name: "Apam Balik", Cuisine: "Malaysian"}
	crumble := Recipe{ID: "2", Name: "Crumble", Cuisine: "British"}

	tests := []struct {
		name   string
		recipe Recipe
		text   string
		scope  SearchScope
		want   bool
	}{
		{"empty text matches everything", crumble, "", ScopeName, true},
		{"cuisine scope hit", apam, "mal", ScopeCuisine, true},
		{"name scope miss on cuisine text", apam, "mal", ScopeName, false},
		{"all scope matches cuisine", apam, "MAL", ScopeAll, true},
		{"all scope matches name", crumble, "rum", ScopeAll, true},
		{"all scope miss", crumble, "mal", ScopeAll, false},
		{"name scope is case-insensitive", apam, "BALIK", ScopeName, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recipe.Matches(tt.text, tt.scope))
		})
	}
}
