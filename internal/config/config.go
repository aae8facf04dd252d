// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package config loads and validates the application configuration.
//
// Configuration is layered via Koanf v2, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. LOOKALIKE_* environment variables
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/lookalike/internal/validation"
)

// Config is the root configuration for a Lookalike session.
type Config struct {
	Ingest    IngestConfig    `koanf:"ingest"`
	Cache     CacheConfig     `koanf:"cache"`
	Features  FeaturesConfig  `koanf:"features"`
	Recommend RecommendConfig `koanf:"recommend"`
	Log       LogConfig       `koanf:"log"`
}

// IngestConfig selects the input documents for the session.
type IngestConfig struct {
	// Inputs lists JSON document paths to load directly.
	Inputs []string `koanf:"inputs"`

	// InputList is an optional plain-text file listing one document path
	// per line; blank lines and lines starting with '#' are ignored.
	InputList string `koanf:"input_list"`
}

// CacheConfig controls the on-disk image cache and its download client.
type CacheConfig struct {
	// Dir is the flat directory holding downloaded images, created on
	// demand. Entries persist across runs.
	Dir string `koanf:"dir" validate:"required"`

	// DownloadTimeout bounds each image GET.
	DownloadTimeout time.Duration `koanf:"download_timeout" validate:"gt=0"`

	// MaxConcurrentDownloads bounds in-flight downloads during feature
	// extraction.
	MaxConcurrentDownloads int `koanf:"max_concurrent_downloads" validate:"min=1,max=64"`

	// DownloadsPerSecond rate-limits outbound GETs; 0 disables limiting.
	DownloadsPerSecond float64 `koanf:"downloads_per_second" validate:"min=0"`
}

// FeaturesConfig controls feature extraction.
type FeaturesConfig struct {
	// Seed feeds the random source used for dominant-palette pixel
	// sampling, making palettes reproducible. 0 selects the default seed.
	Seed int64 `koanf:"seed"`
}

// RecommendConfig controls similarity queries.
type RecommendConfig struct {
	// TopK is the default number of recommendations per query.
	TopK int `koanf:"top_k" validate:"min=0,max=1000"`

	// Mode is the default similarity mode: text, image, or combined.
	Mode string `koanf:"mode" validate:"oneof=text image combined"`

	// ScoreCacheSize bounds the session's pairwise similarity memo.
	ScoreCacheSize int `koanf:"score_cache_size" validate:"min=0"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{},
		Cache: CacheConfig{
			Dir:                    "images",
			DownloadTimeout:        30 * time.Second,
			MaxConcurrentDownloads: 4,
			DownloadsPerSecond:     0, // unlimited
		},
		Features: FeaturesConfig{
			Seed: 0,
		},
		Recommend: RecommendConfig{
			TopK:           5,
			Mode:           "combined",
			ScoreCacheSize: 4096,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(c.Ingest.Inputs) == 0 && c.Ingest.InputList == "" {
		return fmt.Errorf("no input documents configured: set ingest.inputs or ingest.input_list")
	}

	return nil
}
