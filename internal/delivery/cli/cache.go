package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipebox/backend/internal/infrastructure/cache"
)

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show the image cache configuration and counters",
		Args:  cobra.NoArgs,
		RunE:  runCacheStatus,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Erase the image cache directory",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})

	return cmd
}

// runCacheStatus reports what is on disk. It does not build a store, since
// that would clear the directory.
func runCacheStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	fsys, dir, err := cacheFS(cfg.Cache)
	if err != nil {
		return err
	}

	stats, err := cache.Scan(fsys, dir, storeOptions(cfg.Cache))
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	log.Debug("cache scanned", "dir", dir, "entries", stats.EntryCount)

	return renderCacheStats(cmd.OutOrStdout(), formatFlag, dir, stats)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	app.Images.ResetCache(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", app.Store.Dir())
	return nil
}
