// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package features derives textual and visual feature vectors from
// canonical products. Text features come from a normalized bag-of-words
// over name and description plus a small set of domain keyword scores.
// Image features are coarse color statistics and a dominant palette
// sampled with a seeded random source so extraction is reproducible.
package features
