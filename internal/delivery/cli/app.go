package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/infrastructure/cache"
	"github.com/recipebox/backend/internal/infrastructure/recipeapi"
	"github.com/recipebox/backend/internal/infrastructure/remote"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/usecase"
)

// App holds all application dependencies. Store and Images are nil when
// only the catalog was wired.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   *cache.DiskStore
	Catalog *usecase.RecipeCatalog
	Images  *usecase.ImageService
}

// NewApp loads configuration and wires up all dependencies. Building the
// image store clears the cache directory.
func NewApp() (*App, error) {
	cfg, log, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return Wire(cfg, http.DefaultClient, log)
}

// NewCatalogApp loads configuration and wires the recipe catalog only. The
// image cache is left untouched.
func NewCatalogApp() (*App, error) {
	cfg, log, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return WireCatalog(cfg, http.DefaultClient, log), nil
}

func loadSettings() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, err
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// Wire builds the application graph from cfg.
func Wire(cfg *config.Config, httpClient *http.Client, log *slog.Logger) (*App, error) {
	fsys, dir, err := cacheFS(cfg.Cache)
	if err != nil {
		return nil, err
	}

	store := cache.NewDiskStore(fsys, dir, storeOptions(cfg.Cache), log)
	client := remote.NewClient(httpClient, log)

	app := wireCatalog(cfg, client, log)
	app.Store = store
	app.Images = usecase.NewImageService(store, client, log)

	log.Debug("application wired", "cache_type", cfg.Cache.Type, "cache_dir", dir)
	return app, nil
}

// WireCatalog builds an App holding only the recipe catalog.
func WireCatalog(cfg *config.Config, httpClient *http.Client, log *slog.Logger) *App {
	return wireCatalog(cfg, remote.NewClient(httpClient, log), log)
}

func wireCatalog(cfg *config.Config, client *remote.Client, log *slog.Logger) *App {
	source := recipeapi.NewSource(client, cfg.Recipes.ListURL, log)
	log.Debug("catalog wired", "list_url", source.ListURL())

	return &App{
		Config:  cfg,
		Log:     log,
		Catalog: usecase.NewRecipeCatalog(source, usecase.CatalogConfig{PageLength: cfg.Recipes.PageLength}, log),
	}
}

func storeOptions(cfg config.CacheConfig) cache.Options {
	return cache.Options{
		ByteLimit:        cfg.ByteLimit,
		CountLimit:       cfg.CountLimit,
		StrictAccounting: cfg.StrictAccounting,
	}
}

// cacheFS selects the filesystem backing the image cache. The local
// filesystem is rooted at "/", so the directory is made absolute.
func cacheFS(cfg config.CacheConfig) (core.FS, string, error) {
	switch cfg.Type {
	case "memory":
		return billy.NewMemory(), filepath.ToSlash(filepath.Join("/", cfg.Dir)), nil
	case "disk":
		dir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return nil, "", fmt.Errorf("resolving cache directory: %w", err)
		}
		return billy.NewLocal(), dir, nil
	default:
		return nil, "", fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
