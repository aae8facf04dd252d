// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

import "errors"

// ErrProductNotFound is returned when a query names a product id that
// is not in the loaded catalog.
var ErrProductNotFound = errors.New("product not found")

// ErrNoDocumentsLoaded is returned when every configured catalog
// document failed to load.
var ErrNoDocumentsLoaded = errors.New("no catalog documents loaded")
