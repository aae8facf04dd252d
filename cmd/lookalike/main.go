// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package main is the entry point for the Lookalike command line tool.
//
// Lookalike ingests heterogeneous product catalog exports, normalizes
// them into a canonical schema, derives text and image feature vectors,
// and answers "similar products" queries with hand-designed similarity
// metrics.
//
// # Application Flow
//
//  1. Configuration: load settings from config file and environment (Koanf v2)
//  2. Image cache: disk-backed cache with rate-limited, breaker-protected downloads
//  3. Catalog load: normalize each configured document, skipping malformed items
//  4. Feature extraction: bag-of-words text features plus color statistics
//  5. Query: top-k recommendations, pair analysis, or a catalog report
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (LOOKALIKE_ prefix)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Catalog report over two vendor exports:
//
//	export LOOKALIKE_CACHE_DIR=/var/cache/lookalike
//	export LOOKALIKE_INPUTS=styles.json,products.json
//	./lookalike -analyze
//
// Recommendations for one product:
//
//	./lookalike -query style-123 -k 5 -mode combined
//
// Explain a single pair:
//
//	./lookalike -explain style-123,style-456
//
// Determinism: palette sampling uses a fixed seed (LOOKALIKE_SEED), so
// repeated runs over the same catalog produce identical rankings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/lookalike/internal/config"
	"github.com/tomtom215/lookalike/internal/features"
	"github.com/tomtom215/lookalike/internal/imagecache"
	"github.com/tomtom215/lookalike/internal/logging"
	"github.com/tomtom215/lookalike/internal/normalize"
	"github.com/tomtom215/lookalike/internal/recommend"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	var (
		queryID = flag.String("query", "", "product id to find similar products for")
		k       = flag.Int("k", 0, "number of recommendations (0 = configured default)")
		mode    = flag.String("mode", "", "similarity mode: text, image, combined (default from config)")
		explain = flag.String("explain", "", "explain a pair of product ids, comma separated")
		analyze = flag.Bool("analyze", false, "print a catalog analysis report")
		version = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Println("lookalike", Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	runID := uuid.NewString()
	logging.Info().
		Str("run_id", runID).
		Str("version", Version).
		Int("inputs", len(cfg.Ingest.Inputs)).
		Msg("Starting Lookalike")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := buildEngine(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	if err := loadCatalogs(ctx, engine, cfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalogs")
	}
	logging.Info().Int("products", engine.Len()).Msg("Catalog loaded")

	switch {
	case *queryID != "":
		err = runQuery(engine, *queryID, *k, recommend.Mode(*mode), cfg)
	case *explain != "":
		err = runExplain(engine, *explain)
	case *analyze:
		err = runAnalyze(engine)
	default:
		// No explicit operation asked for: report on the catalog.
		err = runAnalyze(engine)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Command failed")
	}
}

// buildEngine wires the normalizer, image cache, and feature extractor
// into a recommendation engine per the loaded configuration.
func buildEngine(cfg *config.Config) (*recommend.Engine, error) {
	logger := logging.Logger()

	images, err := imagecache.New(imagecache.Config{
		Dir:                cfg.Cache.Dir,
		Timeout:            cfg.Cache.DownloadTimeout,
		DownloadsPerSecond: cfg.Cache.DownloadsPerSecond,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}

	return recommend.New(
		recommend.Config{
			TopK:                   cfg.Recommend.TopK,
			Mode:                   recommend.Mode(cfg.Recommend.Mode),
			MaxConcurrentDownloads: cfg.Cache.MaxConcurrentDownloads,
			ScoreCacheSize:         cfg.Recommend.ScoreCacheSize,
		},
		normalize.New(logger),
		images,
		features.NewExtractor(cfg.Features.Seed, logger),
		logger,
	), nil
}

// loadCatalogs ingests the configured path list file and direct inputs.
func loadCatalogs(ctx context.Context, engine *recommend.Engine, cfg *config.Config) error {
	if cfg.Ingest.InputList != "" {
		if err := engine.LoadFromListFile(ctx, cfg.Ingest.InputList); err != nil {
			return err
		}
	}
	if len(cfg.Ingest.Inputs) > 0 {
		if err := engine.LoadDocuments(ctx, cfg.Ingest.Inputs); err != nil {
			return err
		}
	}
	return nil
}

func runQuery(engine *recommend.Engine, queryID string, k int, mode recommend.Mode, cfg *config.Config) error {
	if k <= 0 {
		k = cfg.Recommend.TopK
	}

	target, ok := engine.Product(queryID)
	if !ok {
		return fmt.Errorf("%w: %q", recommend.ErrProductNotFound, queryID)
	}

	recs, err := engine.TopK(queryID, k, mode)
	if err != nil {
		return err
	}

	fmt.Printf("Recommendations for: %s (%s)\n", target.Name, target.CategoryID)
	return printJSON(recs)
}

func runExplain(engine *recommend.Engine, pair string) error {
	ids := strings.SplitN(pair, ",", 2)
	if len(ids) != 2 || ids[0] == "" || ids[1] == "" {
		return fmt.Errorf("explain expects two comma-separated product ids, got %q", pair)
	}

	exp, err := engine.Explain(strings.TrimSpace(ids[0]), strings.TrimSpace(ids[1]))
	if err != nil {
		return err
	}
	return printJSON(exp)
}

func runAnalyze(engine *recommend.Engine) error {
	stats := engine.Stats()
	fmt.Println("Catalog analysis")
	if err := printJSON(stats); err != nil {
		return err
	}

	fmt.Println("Most similar pairs")
	return printJSON(engine.MostSimilarPairs(3))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
