// Package cache provides the bounded blob store behind the image cache.
package cache

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/jmgilman/go/fs/core"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

const (
	// DefaultByteLimit is the total size at which the store is flushed.
	DefaultByteLimit int64 = 5 * 1024 * 1024

	// DefaultCountLimit is the entry count at which the store is flushed.
	DefaultCountLimit = 100

	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Compile-time interface check.
var _ domain.BlobStore = (*DiskStore)(nil)

// Options configures a DiskStore. Zero limits select the defaults.
type Options struct {
	ByteLimit  int64
	CountLimit int

	// StrictAccounting makes overwrites replace the previous size instead of
	// adding to the counters.
	StrictAccounting bool
}

// DiskStore keeps one file per key in a single directory of fsys. When the
// byte or entry count exceeds its limit the whole directory is erased.
//
// By default the counters grow on every successful Put, including overwrites
// of an existing key, so they may overstate the real usage until the next
// flush.
type DiskStore struct {
	fs         core.FS
	dir        string
	byteLimit  int64
	countLimit int
	strict     bool
	log        *slog.Logger

	mu         sync.RWMutex
	ready      bool
	totalBytes int64
	entryCount int
}

// NewDiskStore creates a store rooted at dir and clears it, so every
// process starts with a cold cache.
func NewDiskStore(fsys core.FS, dir string, opts Options, log *slog.Logger) *DiskStore {
	if opts.ByteLimit <= 0 {
		opts.ByteLimit = DefaultByteLimit
	}
	if opts.CountLimit <= 0 {
		opts.CountLimit = DefaultCountLimit
	}

	s := &DiskStore{
		fs:         fsys,
		dir:        dir,
		byteLimit:  opts.ByteLimit,
		countLimit: opts.CountLimit,
		strict:     opts.StrictAccounting,
		log:        logger.Component(log, "cache"),
	}
	s.Reset(context.Background())
	return s
}

// Dir returns the store directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Get returns the value stored for key. Unreadable entries are reported as
// a miss.
func (s *DiskStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, false
	}

	data, err := s.fs.ReadFile(s.path(key))
	if err != nil {
		s.log.DebugContext(ctx, "cache miss", "key", key, "error", err)
		return nil, false
	}

	s.log.DebugContext(ctx, "cache hit", "key", key, "bytes", len(data))
	return data, true
}

// Put writes value under key and updates the counters. If a limit is then
// exceeded the store is flushed before Put returns.
func (s *DiskStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.NewDirectoryUnavailableError(s.dir)
	}

	name := s.path(key)

	var previous int64
	replaced := false
	if s.strict {
		if info, err := s.fs.Stat(name); err == nil {
			previous = info.Size()
			replaced = true
		}
	}

	if err := s.fs.WriteFile(name, value, filePerm); err != nil {
		s.log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		return domain.NewWriteFailedError(err, key)
	}

	s.totalBytes += int64(len(value)) - previous
	if !replaced {
		s.entryCount++
	}

	if s.totalBytes > s.byteLimit || s.entryCount > s.countLimit {
		s.log.InfoContext(ctx, "cache limit exceeded, flushing",
			"total_bytes", s.totalBytes, "entries", s.entryCount)
		s.reset(ctx)
	}
	return nil
}

// Reset erases every entry and zeroes the counters. If the directory cannot
// be recreated the failure is logged and later writes return
// CACHE_DIRECTORY_UNAVAILABLE.
func (s *DiskStore) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(ctx)
}

// reset requires s.mu to be held for writing.
func (s *DiskStore) reset(ctx context.Context) {
	s.totalBytes = 0
	s.entryCount = 0

	if err := s.fs.RemoveAll(s.dir); err != nil {
		s.log.WarnContext(ctx, "failed to remove cache directory", "dir", s.dir, "error", err)
	}

	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		s.log.ErrorContext(ctx, "failed to create cache directory", "dir", s.dir, "error", err)
		s.ready = false
		return
	}
	s.ready = true
}

// Stats returns the counters and limits.
func (s *DiskStore) Stats() domain.CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CacheStats{
		TotalBytes: s.totalBytes,
		EntryCount: s.entryCount,
		ByteLimit:  s.byteLimit,
		CountLimit: s.countLimit,
		Available:  s.ready,
	}
}

func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, FileName(key))
}
