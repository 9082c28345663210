package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmgilman/go/errors"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/usecase"
)

// cacheErrorHeader carries the code of a failed write-through when the
// image itself was fetched successfully.
const cacheErrorHeader = "X-Cache-Error"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.RecipeCatalog
	images  *usecase.ImageService
	log     *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.RecipeCatalog, images *usecase.ImageService, log *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		images:  images,
		log:     logger.Component(log, "http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	recipes := 0
	if h.catalog != nil {
		recipes = len(h.catalog.Recipes())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "recipebox-backend",
		"version": "1.0.0",
		"recipes": recipes,
	})
}

// ListRecipes returns the filtered recipes up to the requested page.
// Query parameters: search, scope (All, Cuisine, Name) and page (1-based).
func (h *Handler) ListRecipes(c *gin.Context) {
	if !h.requireCatalog(c) {
		return
	}

	scope, err := domain.ParseSearchScope(c.Query("scope"))
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := parsePage(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.catalog.View(usecase.Query{
		Text:  c.Query("search"),
		Scope: scope,
		Page:  page,
	}))
}

// GetRecipePage returns one discrete page of the unfiltered list.
func (h *Handler) GetRecipePage(c *gin.Context) {
	if !h.requireCatalog(c) {
		return
	}

	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		respondError(c, errors.WithContext(
			errors.New(errors.CodeInvalidInput, "page must be an integer"), "page", c.Param("page")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"recipes": h.catalog.PageSlice(page),
	})
}

// RefreshRecipes refetches the recipe list.
func (h *Handler) RefreshRecipes(c *gin.Context) {
	if !h.requireCatalog(c) {
		return
	}

	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	h.catalog.ResetPage()
	c.JSON(http.StatusOK, gin.H{
		"count":      len(h.catalog.Recipes()),
		"totalPages": h.catalog.TotalPages(),
	})
}

// ListCuisines returns the distinct cuisines of the catalog.
func (h *Handler) ListCuisines(c *gin.Context) {
	if !h.requireCatalog(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"cuisines": h.catalog.Cuisines()})
}

// GetImage serves the bytes for the url query parameter through the cache.
func (h *Handler) GetImage(c *gin.Context) {
	if !h.requireImages(c) {
		return
	}

	data, err := h.images.FetchImage(c.Request.Context(), c.Query("url"))
	if err != nil && data == nil {
		respondError(c, err)
		return
	}
	if err != nil {
		h.log.WarnContext(c.Request.Context(), "serving image without caching", "error", err)
		c.Header(cacheErrorHeader, string(errors.GetCode(err)))
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// GetCacheStats returns the image cache counters.
func (h *Handler) GetCacheStats(c *gin.Context) {
	if !h.requireImages(c) {
		return
	}

	c.JSON(http.StatusOK, h.images.CacheStats())
}

// ResetCache empties the image cache.
func (h *Handler) ResetCache(c *gin.Context) {
	if !h.requireImages(c) {
		return
	}

	h.images.ResetCache(c.Request.Context())
	c.JSON(http.StatusOK, h.images.CacheStats())
}

func (h *Handler) requireCatalog(c *gin.Context) bool {
	if h.catalog == nil {
		respondError(c, errors.New(errors.CodeNotImplemented, "recipe catalog not configured"))
		return false
	}
	return true
}

func (h *Handler) requireImages(c *gin.Context) bool {
	if h.images == nil {
		respondError(c, errors.New(errors.CodeNotImplemented, "image service not configured"))
		return false
	}
	return true
}

func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		err := errors.New(errors.CodeInvalidInput, "page must be a positive integer")
		return 0, errors.WithContext(err, "page", raw)
	}
	return page, nil
}
