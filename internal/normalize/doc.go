// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

// Package normalize parses heterogeneous vendor product JSON into the
// canonical Product schema.
//
// Vendors export wildly different shapes: bare arrays, container objects
// keyed products/styles/items, and a nested vendor schema identified by a
// pal.style path. Extraction is an ordered chain of shape strategies; the
// vendor extractor always takes precedence so vendor items are never
// double-extracted generically. Items that cannot resolve both an id and a
// name are dropped and counted, never constructed; only an unparseable
// document fails outright.
package normalize
