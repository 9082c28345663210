package recipeapi

import (
	"github.com/jmgilman/go/errors"

	"github.com/recipebox/backend/internal/domain"
)

// recipeListDTO is the body of the recipe list endpoint.
type recipeListDTO struct {
	Recipes *[]recipeDTO `json:"recipes"`
}

// recipeDTO mirrors one wire recipe. Pointers distinguish missing or null
// fields from empty strings.
type recipeDTO struct {
	Cuisine       *string `json:"cuisine"`
	Name          *string `json:"name"`
	UUID          *string `json:"uuid"`
	PhotoURLLarge *string `json:"photo_url_large"`
	PhotoURLSmall *string `json:"photo_url_small"`
	SourceURL     *string `json:"source_url"`
	YoutubeURL    *string `json:"youtube_url"`
}

// MapRecipes converts the decoded list body to domain recipes in server
// order. A missing recipes array or a recipe without cuisine, name or uuid
// makes the whole body invalid.
func MapRecipes(body recipeListDTO) ([]domain.Recipe, error) {
	if body.Recipes == nil {
		return nil, errors.New(domain.CodeInvalidData, "the data received is invalid: missing recipes")
	}

	recipes := make([]domain.Recipe, 0, len(*body.Recipes))
	for i, dto := range *body.Recipes {
		recipe, err := mapRecipe(dto)
		if err != nil {
			return nil, errors.WithContext(err, "index", i)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func mapRecipe(dto recipeDTO) (domain.Recipe, error) {
	required := []struct {
		field string
		value *string
	}{
		{"cuisine", dto.Cuisine},
		{"name", dto.Name},
		{"uuid", dto.UUID},
	}
	for _, r := range required {
		if r.value == nil {
			err := errors.Newf(domain.CodeInvalidData, "the data received is invalid: missing %s", r.field)
			return domain.Recipe{}, errors.WithContext(err, "field", r.field)
		}
	}

	return domain.Recipe{
		ID:            *dto.UUID,
		Name:          *dto.Name,
		Cuisine:       *dto.Cuisine,
		PhotoURLLarge: dto.PhotoURLLarge,
		PhotoURLSmall: dto.PhotoURLSmall,
		SourceURL:     dto.SourceURL,
		YoutubeURL:    dto.YoutubeURL,
	}, nil
}
