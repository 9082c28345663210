package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/recipebox/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *slog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}
	{
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/pages/:page", handler.GetRecipePage)
			recipes.POST("/refresh", handler.RefreshRecipes)
		}

		v1.GET("/cuisines", handler.ListCuisines)

		images := v1.Group("/images")
		{
			images.GET("", handler.GetImage)
			images.GET("/cache", handler.GetCacheStats)
			images.DELETE("/cache", handler.ResetCache)
		}
	}

	return router
}
