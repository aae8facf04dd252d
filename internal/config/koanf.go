// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lookalike/config.yaml",
	"/etc/lookalike/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// config paths.
const envPrefix = "LOOKALIKE_"

// Load builds the configuration from defaults, an optional YAML file, and
// LOOKALIKE_* environment variables, then validates it.
func Load() (*Config, error) {
	return loadFrom(findConfigFile())
}

// loadFrom loads configuration with an explicit (possibly empty) file path.
// Split out for tests.
func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Inputs may arrive as a comma-separated string from the environment.
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths accept comma-separated values
// from environment variables.
var sliceConfigPaths = []string{
	"ingest.inputs",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Values already decoded as slices (from YAML) pass
// through untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps LOOKALIKE_* environment variable names to config
// paths. Variables that do not correspond to a known setting are dropped so
// unrelated environment noise cannot perturb the config.
//
// Examples:
//   - LOOKALIKE_CACHE_DIR -> cache.dir
//   - LOOKALIKE_LOG_LEVEL -> log.level
//   - LOOKALIKE_TOP_K -> recommend.top_k
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		"inputs":                   "ingest.inputs",
		"input_list":               "ingest.input_list",
		"cache_dir":                "cache.dir",
		"download_timeout":         "cache.download_timeout",
		"max_concurrent_downloads": "cache.max_concurrent_downloads",
		"downloads_per_second":     "cache.downloads_per_second",
		"seed":                     "features.seed",
		"top_k":                    "recommend.top_k",
		"mode":                     "recommend.mode",
		"score_cache_size":         "recommend.score_cache_size",
		"log_level":                "log.level",
		"log_format":               "log.format",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
