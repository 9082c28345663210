package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/logger"
)

// ImageService fetches URL-addressed binary resources through a blob store.
type ImageService struct {
	store   domain.BlobStore
	fetcher domain.Fetcher
	log     *slog.Logger
	group   singleflight.Group
}

// NewImageService creates a new image service with dependencies
func NewImageService(store domain.BlobStore, fetcher domain.Fetcher, log *slog.Logger) *ImageService {
	return &ImageService{
		store:   store,
		fetcher: fetcher,
		log:     logger.Component(log, "images"),
	}
}

type fetchResult struct {
	data   []byte
	putErr error
}

// FetchImage returns the bytes for url.
// Flow: check store -> fetch -> write through -> return
//
// Fetch errors are returned unchanged. When the write-through fails the
// fetched bytes are returned together with the store error. A caller whose
// ctx ends returns ctx.Err() while the shared fetch continues for the others.
func (s *ImageService) FetchImage(ctx context.Context, url string) ([]byte, error) {
	if data, ok := s.store.Get(ctx, url); ok {
		return data, nil
	}

	// Cancelling one caller must not fail the others sharing the flight.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(url, func() (any, error) {
		// A caller that finished just before this one may have stored it.
		if data, ok := s.store.Get(flightCtx, url); ok {
			return fetchResult{data: data}, nil
		}

		data, err := s.fetcher.FetchBytes(flightCtx, url)
		if err != nil {
			return nil, err
		}

		putErr := s.store.Put(flightCtx, url, data)
		if putErr != nil {
			s.log.WarnContext(flightCtx, "write-through failed", "url", url, "error", putErr)
		}
		return fetchResult{data: data, putErr: putErr}, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.log.DebugContext(ctx, "image fetch failed", "url", url, "error", res.Err)
		return nil, res.Err
	}

	result := res.Val.(fetchResult)
	s.log.DebugContext(ctx, "image fetched", "url", url, "bytes", len(result.data), "shared", res.Shared)
	return result.data, result.putErr
}

// ResetCache empties the underlying store.
func (s *ImageService) ResetCache(ctx context.Context) {
	s.store.Reset(ctx)
	s.log.InfoContext(ctx, "image cache reset")
}

// CacheStats returns the store counters.
func (s *ImageService) CacheStats() domain.CacheStats {
	return s.store.Stats()
}
