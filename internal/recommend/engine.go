// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lookalike/internal/cache"
	"github.com/tomtom215/lookalike/internal/features"
	"github.com/tomtom215/lookalike/internal/imagecache"
	"github.com/tomtom215/lookalike/internal/metrics"
	"github.com/tomtom215/lookalike/internal/models"
	"github.com/tomtom215/lookalike/internal/normalize"
)

// Config controls engine behavior.
type Config struct {
	// TopK is the default result count for recommendations.
	TopK int

	// Mode is the default similarity mode for queries.
	Mode Mode

	// MaxConcurrentDownloads bounds parallel image prefetches per load.
	MaxConcurrentDownloads int

	// ScoreCacheSize bounds the pairwise similarity memo.
	ScoreCacheSize int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		TopK:                   5,
		Mode:                   ModeCombined,
		MaxConcurrentDownloads: 4,
		ScoreCacheSize:         4096,
	}
}

// Recommendation is one ranked result of a similarity query.
type Recommendation struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	CategoryID string  `json:"category_id"`
	Score      float64 `json:"score"`
}

// Pair is one entry of the most-similar-pairs report. Ids identify the
// products; the names are carried for report display, since names are
// not unique across a catalog.
type Pair struct {
	ProductIDA string  `json:"product_id_a"`
	ProductIDB string  `json:"product_id_b"`
	NameA      string  `json:"name_a"`
	NameB      string  `json:"name_b"`
	Score      float64 `json:"score"`
}

// Engine loads catalogs and answers similarity queries. All query
// methods are safe for concurrent use once loading has completed;
// loading and querying must not overlap with each other.
type Engine struct {
	cfg       Config
	logger    zerolog.Logger
	normalize *normalize.Normalizer
	images    *imagecache.Cache
	extract   *features.Extractor
	scores    *cache.ScoreCache

	mu       sync.RWMutex
	products []models.Product
	vectors  []models.FeatureVector
	index    map[string]int
	skipped  int
}

// New creates an Engine. images may be nil, in which case products are
// ranked on text features alone.
func New(cfg Config, normalizer *normalize.Normalizer, images *imagecache.Cache, extractor *features.Extractor, logger zerolog.Logger) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeCombined
	}
	if cfg.MaxConcurrentDownloads <= 0 {
		cfg.MaxConcurrentDownloads = DefaultConfig().MaxConcurrentDownloads
	}

	return &Engine{
		cfg:       cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		normalize: normalizer,
		images:    images,
		extract:   extractor,
		scores:    cache.NewScoreCache(cfg.ScoreCacheSize),
		index:     make(map[string]int),
	}
}

// LoadDocument ingests a single catalog document from disk.
func (e *Engine) LoadDocument(ctx context.Context, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied catalog path
	if err != nil {
		metrics.DocumentsIngested.WithLabelValues("error").Inc()
		return fmt.Errorf("read catalog %s: %w", path, err)
	}

	// The normalizer records document-level ingest metrics itself.
	result, err := e.normalize.Normalize(data)
	if err != nil {
		return fmt.Errorf("normalize catalog %s: %w", path, err)
	}

	e.logger.Info().
		Str("path", path).
		Int("products", len(result.Products)).
		Int("skipped", result.Skipped).
		Msg("catalog document loaded")

	e.ingest(ctx, result)
	return nil
}

// LoadDocuments ingests each path in order, skipping documents that fail
// to load and reporting them, so one malformed export does not abort a
// whole catalog build. ErrNoDocumentsLoaded is returned only when every
// path failed.
func (e *Engine) LoadDocuments(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	loaded := 0
	for _, path := range paths {
		if err := e.LoadDocument(ctx, path); err != nil {
			e.logger.Warn().Err(err).Str("path", path).Msg("skipping catalog document")
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("%w: %d paths attempted", ErrNoDocumentsLoaded, len(paths))
	}

	e.logger.Info().
		Int("loaded", loaded).
		Int("failed", len(paths)-loaded).
		Int("total_products", e.Len()).
		Msg("catalog load complete")

	return nil
}

// LoadFromListFile reads a newline-separated list of catalog document
// paths and loads them with LoadDocuments. Blank lines and lines
// starting with '#' are ignored.
func (e *Engine) LoadFromListFile(ctx context.Context, listPath string) error {
	f, err := os.Open(listPath) //nolint:gosec // operator-supplied list path
	if err != nil {
		return fmt.Errorf("open catalog list %s: %w", listPath, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read catalog list %s: %w", listPath, err)
	}

	return e.LoadDocuments(ctx, paths)
}

// LoadProducts ingests already-normalized products directly. Used when
// the caller runs normalization itself, and by tests.
func (e *Engine) LoadProducts(ctx context.Context, products []models.Product) {
	e.ingest(ctx, &normalize.Result{Products: products})
}

// ingest prefetches images for the new products, extracts their feature
// vectors in ingestion order, and appends them to the corpus. Duplicate
// ids keep the first occurrence in the id index.
func (e *Engine) ingest(ctx context.Context, result *normalize.Result) {
	imagePaths := e.prefetchImages(ctx, result.Products)

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range result.Products {
		vec := e.extract.Extract(p, imagePaths[p.ID])

		e.products = append(e.products, p)
		e.vectors = append(e.vectors, vec)
		if _, exists := e.index[p.ID]; !exists {
			e.index[p.ID] = len(e.products) - 1
		}
	}
	e.skipped += result.Skipped

	// Cached scores are only valid against the previous corpus.
	e.scores.Clear()
}

// prefetchImages downloads product images with bounded concurrency and
// returns local paths keyed by product id. Failed or absent images are
// simply missing from the map.
func (e *Engine) prefetchImages(ctx context.Context, products []models.Product) map[string]string {
	paths := make(map[string]string)
	if e.images == nil {
		return paths
	}

	sem := make(chan struct{}, e.cfg.MaxConcurrentDownloads)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, p := range products {
		if !p.HasImage() {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(p models.Product) {
			defer wg.Done()
			defer func() { <-sem }()

			path, err := e.images.Fetch(ctx, p.ImageURL, p.ID)
			if err != nil {
				e.logger.Debug().Err(err).
					Str("product_id", p.ID).
					Str("url", p.ImageURL).
					Msg("image unavailable, product ranks on text only")
				return
			}

			mu.Lock()
			paths[p.ID] = path
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	return paths
}

// TopK ranks every other product against the query product by the given
// mode and returns the k best, ties broken by catalog ingestion order.
// The query product is never part of the result. Non-positive k and
// empty catalogs yield empty results without error.
func (e *Engine) TopK(queryID string, k int, mode Mode) ([]Recommendation, error) {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues("topk").Observe(time.Since(start).Seconds())
	}()

	if mode == "" {
		mode = e.cfg.Mode
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if k <= 0 || len(e.products) == 0 {
		return []Recommendation{}, nil
	}

	queryIdx, ok := e.index[queryID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, queryID)
	}
	query := e.vectors[queryIdx]

	recs := make([]Recommendation, 0, len(e.products)-1)
	for i := range e.products {
		// Skip every record carrying the query id, not just the query
		// index: duplicate ids must never surface in their own results.
		if i == queryIdx || e.products[i].ID == queryID {
			continue
		}
		recs = append(recs, Recommendation{
			ProductID:  e.products[i].ID,
			Name:       e.products[i].Name,
			CategoryID: e.products[i].CategoryID,
			Score:      e.score(mode, queryIdx, i, query, e.vectors[i]),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if k < len(recs) {
		recs = recs[:k]
	}
	return recs, nil
}

// Recommend runs TopK with the engine's configured result count and
// similarity mode.
func (e *Engine) Recommend(queryID string) ([]Recommendation, error) {
	return e.TopK(queryID, e.cfg.TopK, e.cfg.Mode)
}

// MostSimilarPairs scores every unordered product pair by combined
// similarity and returns the top limit pairs. A non-positive limit uses
// the catalog-report default of 3.
func (e *Engine) MostSimilarPairs(limit int) []Pair {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues("pairs").Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = 3
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var pairs []Pair
	for i := 0; i < len(e.products); i++ {
		for j := i + 1; j < len(e.products); j++ {
			pairs = append(pairs, Pair{
				ProductIDA: e.products[i].ID,
				ProductIDB: e.products[j].ID,
				NameA:      e.products[i].Name,
				NameB:      e.products[j].Name,
				Score:      e.score(ModeCombined, i, j, e.vectors[i], e.vectors[j]),
			})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})

	if limit < len(pairs) {
		pairs = pairs[:limit]
	}
	return pairs
}

// score computes the similarity between two corpus entries, memoizing
// results in the LRU score cache. The key is built from the corpus
// indices, not the product ids: duplicate ids are distinct corpus
// entries and must not share a memo slot. PairKey orders the pair so
// symmetric lookups share one entry.
func (e *Engine) score(mode Mode, i, j int, a, b models.FeatureVector) float64 {
	key := string(mode) + "|" + cache.PairKey(strconv.Itoa(i), strconv.Itoa(j))
	if s, ok := e.scores.Get(key); ok {
		return s
	}

	s := similarityFor(mode, a, b)
	e.scores.Add(key, s)
	return s
}

// Product returns the catalog product with the given id.
func (e *Engine) Product(id string) (models.Product, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.index[id]
	if !ok {
		return models.Product{}, false
	}
	return e.products[idx], true
}

// Products returns a copy of the catalog in ingestion order.
func (e *Engine) Products() []models.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]models.Product, len(e.products))
	copy(out, e.products)
	return out
}

// ProductsInCategory returns the catalog products with the given
// category id, in ingestion order.
func (e *Engine) ProductsInCategory(categoryID string) []models.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []models.Product
	for _, p := range e.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category ids of the catalog, ordered
// by first appearance.
func (e *Engine) Categories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]struct{}, len(e.products))
	var out []string
	for _, p := range e.products {
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		out = append(out, p.CategoryID)
	}
	return out
}

// Len returns the number of loaded products.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.products)
}
