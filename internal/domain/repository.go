package domain

import "context"

// Fetcher performs single-attempt HTTP GETs against remote resources.
type Fetcher interface {
	// FetchBytes returns the raw body of a 200 response.
	FetchBytes(ctx context.Context, rawURL string) ([]byte, error)

	// FetchJSON decodes the body of a 200 response into out.
	FetchJSON(ctx context.Context, rawURL string, out any) error
}

// RecipeSource provides the full recipe list in server order.
type RecipeSource interface {
	FetchRecipes(ctx context.Context) ([]Recipe, error)
}

// CacheStats describes the aggregate counters of a blob store.
type CacheStats struct {
	TotalBytes int64 `json:"totalBytes" yaml:"total_bytes"`
	EntryCount int   `json:"entryCount" yaml:"entry_count"`
	ByteLimit  int64 `json:"byteLimit" yaml:"byte_limit"`
	CountLimit int   `json:"countLimit" yaml:"count_limit"`
	Available  bool  `json:"available" yaml:"available"`
}

// BlobStore is a key-addressed store for binary values with bounded size.
type BlobStore interface {
	// Get returns the stored value for key. Read failures are reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Reset removes every entry and zeroes the counters.
	Reset(ctx context.Context)

	// Stats returns the current counters and limits.
	Stats() CacheStats
}
