// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package features

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lookalike/internal/metrics"
	"github.com/tomtom215/lookalike/internal/models"
)

// DefaultSeed seeds the palette sampler when no seed is configured,
// keeping extraction runs reproducible by default.
const DefaultSeed = 42

// Extractor turns canonical products into feature vectors. It is safe
// for concurrent use; the shared random source is serialized internally.
type Extractor struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewExtractor creates an Extractor with the given sampling seed.
// A zero seed selects DefaultSeed.
func NewExtractor(seed int64, logger zerolog.Logger) *Extractor {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Extractor{
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible sampling, not crypto
		logger: logger.With().Str("component", "features").Logger(),
	}
}

// Extract builds the feature vector for p. imagePath points at a cached
// image file, or is empty when the product has no usable image; image
// decode failures degrade to a text-only vector.
func (e *Extractor) Extract(p models.Product, imagePath string) models.FeatureVector {
	start := time.Now()

	vec := models.FeatureVector{
		ProductID:  p.ID,
		CategoryID: p.CategoryID,
		Text:       TextFeaturesOf(p.CombinedText()),
	}

	if imagePath != "" {
		e.mu.Lock()
		img, err := ImageFeaturesFromFile(imagePath, e.rng)
		e.mu.Unlock()
		if err != nil {
			e.logger.Warn().Err(err).
				Str("product_id", p.ID).
				Str("path", imagePath).
				Msg("image feature extraction failed")
		} else {
			vec.Image = &img
		}
	}

	metrics.FeatureExtractionDuration.Observe(time.Since(start).Seconds())

	return vec
}
