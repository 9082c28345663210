package recipeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/infrastructure/remote"
	"github.com/recipebox/backend/internal/logger"
)

// fakeFetcher serves a canned body for FetchJSON.
type fakeFetcher struct {
	body string
	err  error
	urls []string
}

func (f *fakeFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, rawURL string, out any) error {
	data, err := f.FetchBytes(ctx, rawURL)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func TestNewSource_DefaultURL(t *testing.T) {
	source := NewSource(&fakeFetcher{}, "", nil)
	assert.Equal(t, DefaultListURL, source.ListURL())
}

func TestFetchRecipes(t *testing.T) {
	fetcher := &fakeFetcher{body: `{"recipes":[{"cuisine":"Malaysian","name":"Apam Balik","uuid":"1"}]}`}
	source := NewSource(fetcher, "https://example.com/recipes.json", logger.Discard())

	recipes, err := source.FetchRecipes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/recipes.json"}, fetcher.urls)
	assert.Equal(t, []domain.Recipe{{ID: "1", Name: "Apam Balik", Cuisine: "Malaysian"}}, recipes)
}

func TestFetchRecipes_PropagatesFetchError(t *testing.T) {
	fetchErr := domain.NewStatusError(http.StatusForbidden, "https://example.com/recipes.json")
	source := NewSource(&fakeFetcher{err: fetchErr}, "https://example.com/recipes.json", logger.Discard())

	recipes, err := source.FetchRecipes(context.Background())

	assert.Nil(t, recipes)
	assert.Equal(t, fetchErr, err)
}

func TestFetchRecipes_OverHTTP(t *testing.T) {
	bodies := map[string]string{
		"/recipes.json":           `{"recipes":[{"cuisine":"British","name":"Bakewell Tart","uuid":"eed6005f"},{"cuisine":"American","name":"Banana Pancakes","uuid":"f8b20884"}]}`,
		"/recipes-malformed.json": `{"recipes":[{"cuisine":"British","name":"Bakewell Tart"}]}`,
		"/recipes-empty.json":     `{"recipes":[]}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := remote.NewClient(server.Client(), logger.Discard())

	t.Run("full list", func(t *testing.T) {
		recipes, err := NewSource(client, server.URL+"/recipes.json", logger.Discard()).FetchRecipes(context.Background())
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Bakewell Tart", recipes[0].Name)
		assert.Equal(t, "f8b20884", recipes[1].ID)
	})

	t.Run("malformed list", func(t *testing.T) {
		_, err := NewSource(client, server.URL+"/recipes-malformed.json", logger.Discard()).FetchRecipes(context.Background())
		assert.Equal(t, domain.CodeInvalidData, domain.CodeOf(err))
	})

	t.Run("empty list", func(t *testing.T) {
		recipes, err := NewSource(client, server.URL+"/recipes-empty.json", logger.Discard()).FetchRecipes(context.Background())
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("missing list", func(t *testing.T) {
		_, err := NewSource(client, server.URL+"/nope.json", logger.Discard()).FetchRecipes(context.Background())
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}
