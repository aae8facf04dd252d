// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package metrics provides Prometheus instrumentation for the ingestion
// pipeline, image cache, and recommendation queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics

	DocumentsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookalike_documents_ingested_total",
			Help: "Total number of input documents processed, by result",
		},
		[]string{"result"}, // "ok", "error"
	)

	ProductsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_products_extracted_total",
			Help: "Total number of canonical products emitted by normalization",
		},
	)

	ItemsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_items_skipped_total",
			Help: "Total number of source items dropped for missing id or name",
		},
	)

	// Image cache metrics

	ImageCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_image_cache_hits_total",
			Help: "Total number of image fetches served from the disk cache",
		},
	)

	ImageCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_image_cache_misses_total",
			Help: "Total number of image fetches requiring a download",
		},
	)

	ImageDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookalike_image_downloads_total",
			Help: "Total number of image download attempts, by result",
		},
		[]string{"result"}, // "ok", "http_error", "decode_error", "rejected"
	)

	ImageDownloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lookalike_image_download_duration_seconds",
			Help:    "Duration of image downloads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit breaker metrics (download client)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lookalike_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookalike_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Feature extraction and query metrics

	FeatureExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lookalike_feature_extraction_duration_seconds",
			Help:    "Duration of per-product feature extraction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookalike_query_duration_seconds",
			Help:    "Duration of similarity queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "topk", "pairs", "explain"
	)

	SimilarityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_similarity_cache_hits_total",
			Help: "Total number of pairwise similarity scores served from the session memo",
		},
	)

	SimilarityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lookalike_similarity_cache_misses_total",
			Help: "Total number of pairwise similarity scores computed",
		},
	)
)
