// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package recommend ranks catalog products by pairwise similarity.
//
// The engine loads one or more catalog documents through the schema
// normalizer, prefetches product images with bounded concurrency, and
// derives a feature vector per product. Queries rank every other product
// against the query product using hand-designed text and image metrics;
// ties keep catalog ingestion order, so results are fully deterministic
// for a given corpus and seed.
package recommend
