package cache

import (
	"errors"
	"io/fs"

	"github.com/jmgilman/go/fs/core"

	"github.com/recipebox/backend/internal/domain"
)

// Scan reports the entries currently in dir without modifying it. Counts
// come from the files on disk, not from a running store's counters. A
// missing directory is reported as unavailable with zero usage.
func Scan(fsys core.FS, dir string, opts Options) (domain.CacheStats, error) {
	if opts.ByteLimit <= 0 {
		opts.ByteLimit = DefaultByteLimit
	}
	if opts.CountLimit <= 0 {
		opts.CountLimit = DefaultCountLimit
	}

	stats := domain.CacheStats{
		ByteLimit:  opts.ByteLimit,
		CountLimit: opts.CountLimit,
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if exists, _ := fsys.Exists(dir); !exists {
			return stats, nil
		}
		return stats, err
	}
	stats.Available = true

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return stats, err
		}
		stats.EntryCount++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}
