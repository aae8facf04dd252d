// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package models

// Product is the canonical record every downstream component consumes,
// regardless of which vendor format it was extracted from.
//
// ID and Name are always non-empty: items that cannot resolve both are
// dropped during normalization and never constructed. CategoryID is always
// populated (explicit, inferred from the name, or "other"). Products are
// created once during ingestion and never mutated afterwards, so concurrent
// reads against a loaded corpus need no locking.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`

	// ImageURL is empty when no acceptable image candidate was found.
	ImageURL string `json:"image_url,omitempty"`

	// RawPayload preserves the full source item as decoded JSON so that
	// collaborators (attribute extractors, reporting) can reach fields the
	// canonical schema does not carry.
	RawPayload any `json:"-"`
}

// HasImage reports whether an image URL was discovered for the product.
func (p *Product) HasImage() bool {
	return p.ImageURL != ""
}

// CombinedText returns the text feature extraction operates on.
func (p *Product) CombinedText() string {
	return p.Name + " " + p.Description
}
