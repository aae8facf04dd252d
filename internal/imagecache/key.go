// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package imagecache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives the stable cache key for a (productID, url) pair:
// the product id joined with the first 8 hex characters of the
// SHA-256 of the URL. The same pair always maps to the same entry.
func Key(productID, url string) string {
	sum := sha256.Sum256([]byte(url))
	return productID + "_" + hex.EncodeToString(sum[:])[:8]
}
