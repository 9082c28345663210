package usecase

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

// MockBlobStore is a mock implementation of domain.BlobStore
type MockBlobStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	putError error
	gets     int
	puts     int
	resets   int
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{data: make(map[string][]byte)}
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	value, ok := m.data[key]
	return value, ok
}

func (m *MockBlobStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putError != nil {
		return m.putError
	}
	m.data[key] = value
	return nil
}

func (m *MockBlobStore) Reset(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	m.data = make(map[string][]byte)
}

func (m *MockBlobStore) Stats() domain.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CacheStats{EntryCount: len(m.data), CountLimit: 100, Available: true}
}

// MockFetcher is a mock implementation of domain.Fetcher
type MockFetcher struct {
	bodies map[string][]byte
	err    error
	calls  atomic.Int32
}

func (m *MockFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.bodies[rawURL], nil
}

func (m *MockFetcher) FetchJSON(ctx context.Context, rawURL string, out any) error {
	panic("not used")
}

const testImageURL = "https://example.com/photos/small.jpg"

func TestFetchImage_MissThenHit(t *testing.T) {
	store := NewMockBlobStore()
	fetcher := &MockFetcher{bodies: map[string][]byte{testImageURL: []byte("jpeg-bytes")}}
	service := NewImageService(store, fetcher, logger.Discard())
	ctx := context.Background()

	first, err := service.FetchImage(ctx, testImageURL)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), first)
	assert.Equal(t, int32(1), fetcher.calls.Load())
	assert.Equal(t, 1, store.puts)

	second, err := service.FetchImage(ctx, testImageURL)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "hit must not touch the network")
	assert.Equal(t, 1, store.puts)
}

func TestFetchImage_FetchErrorPropagates(t *testing.T) {
	fetchErr := domain.NewStatusError(http.StatusNotFound, testImageURL)
	store := NewMockBlobStore()
	service := NewImageService(store, &MockFetcher{err: fetchErr}, logger.Discard())

	data, err := service.FetchImage(context.Background(), testImageURL)

	assert.Nil(t, data)
	assert.Equal(t, fetchErr, err)
	assert.Zero(t, store.puts)
}

func TestFetchImage_WriteThroughFailure(t *testing.T) {
	putErr := domain.NewDirectoryUnavailableError("/cache")
	store := NewMockBlobStore()
	store.putError = putErr
	fetcher := &MockFetcher{bodies: map[string][]byte{testImageURL: []byte("jpeg-bytes")}}
	service := NewImageService(store, fetcher, logger.Discard())

	data, err := service.FetchImage(context.Background(), testImageURL)

	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, putErr, err)
	assert.Equal(t, domain.CodeDirectoryUnavailable, domain.CodeOf(err))

	_, err = service.FetchImage(context.Background(), testImageURL)
	assert.Error(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load(), "nothing was stored, so the second call fetches again")
}

func TestFetchImage_ConcurrentMissesShareOneFetch(t *testing.T) {
	store := NewMockBlobStore()
	fetcher := &MockFetcher{bodies: map[string][]byte{testImageURL: []byte("jpeg-bytes")}}
	service := NewImageService(store, fetcher, logger.Discard())

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := service.FetchImage(context.Background(), testImageURL)
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), fetcher.calls.Load())
	for _, data := range results {
		assert.Equal(t, []byte("jpeg-bytes"), data)
	}
}

// gatedFetcher blocks every fetch until release is closed or the fetch
// context ends.
type gatedFetcher struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	select {
	case <-g.release:
		return []byte("jpeg-bytes"), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedFetcher) FetchJSON(ctx context.Context, rawURL string, out any) error {
	panic("not used")
}

func TestFetchImage_CancelledCallerDoesNotFailOthers(t *testing.T) {
	store := NewMockBlobStore()
	fetcher := &gatedFetcher{started: make(chan struct{}), release: make(chan struct{})}
	service := NewImageService(store, fetcher, logger.Discard())

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := service.FetchImage(leaderCtx, testImageURL)
		leaderErr <- err
	}()
	<-fetcher.started

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	type result struct {
		data []byte
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		data, err := service.FetchImage(context.Background(), testImageURL)
		follower <- result{data, err}
	}()

	close(fetcher.release)
	got := <-follower

	require.NoError(t, got.err)
	assert.Equal(t, []byte("jpeg-bytes"), got.data)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	data, ok := store.Get(context.Background(), testImageURL)
	assert.True(t, ok)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestFetchImage_DistinctURLs(t *testing.T) {
	other := "https://example.com/photos/large.jpg"
	store := NewMockBlobStore()
	fetcher := &MockFetcher{bodies: map[string][]byte{
		testImageURL: []byte("small"),
		other:        []byte("large"),
	}}
	service := NewImageService(store, fetcher, logger.Discard())

	small, err := service.FetchImage(context.Background(), testImageURL)
	require.NoError(t, err)
	large, err := service.FetchImage(context.Background(), other)
	require.NoError(t, err)

	assert.Equal(t, []byte("small"), small)
	assert.Equal(t, []byte("large"), large)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestImageService_ResetAndStats(t *testing.T) {
	store := NewMockBlobStore()
	fetcher := &MockFetcher{bodies: map[string][]byte{testImageURL: []byte("jpeg-bytes")}}
	service := NewImageService(store, fetcher, logger.Discard())
	ctx := context.Background()

	_, err := service.FetchImage(ctx, testImageURL)
	require.NoError(t, err)
	assert.Equal(t, 1, service.CacheStats().EntryCount)

	service.ResetCache(ctx)

	assert.Equal(t, 1, store.resets)
	assert.Zero(t, service.CacheStats().EntryCount)
	_, err = service.FetchImage(ctx, testImageURL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}
