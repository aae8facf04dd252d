// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package imagecache fetches product images over HTTP and persists them in
// a flat on-disk cache keyed by product id and URL hash.
//
// Cache entries survive process restarts; a hit returns the cached path
// with no network call and no re-validation (a corrupted cached file is
// never auto-healed - accepted tradeoff). Downloads are bounded by a
// per-request timeout, rate-limited, wrapped in a circuit breaker, and
// deduplicated per cache key so concurrent fetches of one image perform a
// single download.
package imagecache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	// Register decoders for every format the URL heuristic accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/lookalike/internal/metrics"
)

// ErrDownload marks any failed fetch: transport error, non-success status,
// rejected request, or invalid image bytes. Callers record the failure and
// carry on; a missing image is never fatal to feature extraction.
var ErrDownload = errors.New("image download failed")

// maxImageBytes caps a single download body.
const maxImageBytes = 32 << 20 // 32MB

// breakerName labels the download circuit breaker in logs and metrics.
const breakerName = "image-download"

// Config controls the cache directory and download client.
type Config struct {
	// Dir is the flat cache directory, created on demand.
	Dir string

	// Timeout bounds each download request.
	Timeout time.Duration

	// DownloadsPerSecond rate-limits outbound GETs; 0 disables limiting.
	DownloadsPerSecond float64

	// Client overrides the HTTP client; nil builds one from Timeout.
	// Used by tests to count or stub network calls.
	Client *http.Client
}

// Cache is a disk-backed image fetch cache. It is safe for concurrent use.
type Cache struct {
	dir     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
	logger  zerolog.Logger

	// inflight deduplicates concurrent downloads per cache key.
	mu       sync.Mutex
	inflight map[string]*fetchResult
}

// fetchResult carries the outcome of an in-flight download to any waiters.
type fetchResult struct {
	done chan struct{}
	path string
	err  error
}

// New creates a Cache rooted at cfg.Dir, creating the directory if needed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, logger zerolog.Logger) (*Cache, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("image cache: directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("image cache: create directory: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.DownloadsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.DownloadsPerSecond), 1)
	}

	c := &Cache{
		dir:      cfg.Dir,
		client:   client,
		limiter:  limiter,
		logger:   logger.With().Str("component", "imagecache").Logger(),
		inflight: make(map[string]*fetchResult),
	}
	c.breaker = newDownloadBreaker(c.logger)

	return c, nil
}

// Fetch returns the local path of the image for (url, productID),
// downloading it on a cache miss. A pre-existing cache file is returned
// immediately with no network activity. All failures wrap ErrDownload.
func (c *Cache) Fetch(ctx context.Context, url, productID string) (string, error) {
	key := Key(productID, url)
	path := filepath.Join(c.dir, key+".jpg")

	if _, err := os.Stat(path); err == nil {
		metrics.ImageCacheHits.Inc()
		return path, nil
	}
	metrics.ImageCacheMisses.Inc()

	// Deduplicate concurrent downloads of the same key.
	c.mu.Lock()
	if res, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-res.done:
			return res.path, res.err
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrDownload, ctx.Err())
		}
	}
	res := &fetchResult{done: make(chan struct{})}
	c.inflight[key] = res
	c.mu.Unlock()

	res.path, res.err = c.download(ctx, url, path)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(res.done)

	return res.path, res.err
}

// download performs the rate-limited, breaker-protected GET, persists the
// body, and verifies it decodes as an image. A body that fails to decode
// is deleted so the entry can be re-created by a later fetch.
func (c *Cache) download(ctx context.Context, url, path string) (string, error) {
	start := time.Now()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDownload, err)
		}
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ImageDownloads.WithLabelValues("rejected").Inc()
		} else {
			metrics.ImageDownloads.WithLabelValues("http_error").Inc()
		}
		c.logger.Debug().Err(err).Str("url", url).Msg("image download failed")
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("%w: persist: %v", ErrDownload, err)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		_ = os.Remove(path)
		metrics.ImageDownloads.WithLabelValues("decode_error").Inc()
		c.logger.Debug().Err(err).Str("url", url).Msg("downloaded bytes are not a decodable image")
		return "", fmt.Errorf("%w: decode: %v", ErrDownload, err)
	}

	metrics.ImageDownloads.WithLabelValues("ok").Inc()
	metrics.ImageDownloadDuration.Observe(time.Since(start).Seconds())

	return path, nil
}

// get issues the bounded HTTP GET and reads the body.
func (c *Cache) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	return data, nil
}
