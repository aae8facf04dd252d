// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("LOOKALIKE_INPUTS", "catalog.json")

	cfg, err := loadFrom("")
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.Cache.Dir != "images" {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, "images")
	}
	if cfg.Cache.DownloadTimeout != 30*time.Second {
		t.Errorf("Cache.DownloadTimeout = %v, want 30s", cfg.Cache.DownloadTimeout)
	}
	if cfg.Recommend.TopK != 5 {
		t.Errorf("Recommend.TopK = %d, want 5", cfg.Recommend.TopK)
	}
	if cfg.Recommend.Mode != "combined" {
		t.Errorf("Recommend.Mode = %q, want %q", cfg.Recommend.Mode, "combined")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
ingest:
  inputs:
    - a.json
    - b.json
cache:
  dir: /tmp/lookalike-cache
  max_concurrent_downloads: 8
recommend:
  top_k: 10
log:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if len(cfg.Ingest.Inputs) != 2 || cfg.Ingest.Inputs[0] != "a.json" {
		t.Errorf("Ingest.Inputs = %v, want [a.json b.json]", cfg.Ingest.Inputs)
	}
	if cfg.Cache.Dir != "/tmp/lookalike-cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Cache.MaxConcurrentDownloads != 8 {
		t.Errorf("Cache.MaxConcurrentDownloads = %d, want 8", cfg.Cache.MaxConcurrentDownloads)
	}
	if cfg.Recommend.TopK != 10 {
		t.Errorf("Recommend.TopK = %d, want 10", cfg.Recommend.TopK)
	}
	// Defaults survive where the file is silent.
	if cfg.Recommend.Mode != "combined" {
		t.Errorf("Recommend.Mode = %q, want default %q", cfg.Recommend.Mode, "combined")
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
ingest:
  inputs: [a.json]
recommend:
  top_k: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LOOKALIKE_TOP_K", "3")
	t.Setenv("LOOKALIKE_MODE", "text")
	t.Setenv("LOOKALIKE_INPUTS", "x.json, y.json")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.Recommend.TopK != 3 {
		t.Errorf("Recommend.TopK = %d, want env override 3", cfg.Recommend.TopK)
	}
	if cfg.Recommend.Mode != "text" {
		t.Errorf("Recommend.Mode = %q, want %q", cfg.Recommend.Mode, "text")
	}
	if len(cfg.Ingest.Inputs) != 2 || cfg.Ingest.Inputs[1] != "y.json" {
		t.Errorf("Ingest.Inputs = %v, want comma-split [x.json y.json]", cfg.Ingest.Inputs)
	}
}

func TestLoadFrom_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "no inputs configured",
			env:  map[string]string{},
		},
		{
			name: "bad mode",
			env:  map[string]string{"LOOKALIKE_INPUTS": "a.json", "LOOKALIKE_MODE": "audio"},
		},
		{
			name: "too many concurrent downloads",
			env:  map[string]string{"LOOKALIKE_INPUTS": "a.json", "LOOKALIKE_MAX_CONCURRENT_DOWNLOADS": "999"},
		},
		{
			name: "bad log level",
			env:  map[string]string{"LOOKALIKE_INPUTS": "a.json", "LOOKALIKE_LOG_LEVEL": "loud"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := loadFrom(""); err == nil {
				t.Error("loadFrom() = nil error, want validation failure")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LOOKALIKE_CACHE_DIR", "cache.dir"},
		{"LOOKALIKE_TOP_K", "recommend.top_k"},
		{"LOOKALIKE_LOG_LEVEL", "log.level"},
		{"LOOKALIKE_UNRELATED", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
