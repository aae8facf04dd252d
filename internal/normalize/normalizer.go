// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lookalike/internal/metrics"
	"github.com/tomtom215/lookalike/internal/models"
)

// ErrInvalidDocument marks a document that cannot be parsed or whose
// top-level structure is not recognizable as product data. It is fatal for
// that document only; callers in multi-document mode skip and report.
var ErrInvalidDocument = errors.New("invalid product document")

// containerKeys are the recognized object keys holding an item array.
var containerKeys = []string{"products", "styles", "items"}

// Result is the outcome of normalizing one document. Skipped counts items
// dropped for missing id or name; a document-level parse failure is an
// error instead, never a Result.
type Result struct {
	Products []models.Product
	Skipped  int
}

// Normalizer parses raw JSON documents of unknown shape into ordered lists
// of canonical products. It is stateless and safe for concurrent use.
type Normalizer struct {
	logger zerolog.Logger
}

// New creates a Normalizer logging through the given logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With().Str("component", "normalize").Logger(),
	}
}

// Normalize parses raw JSON and extracts canonical products.
//
// Recognized document shapes, in priority order: a vendor-schema object
// (nested pal.style), an object with a products/styles/items array, a bare
// array of items, and finally any single object treated as one item. A
// single bad item never fails the document; it is dropped and counted.
func (n *Normalizer) Normalize(data []byte) (*Result, error) {
	root, err := parseDocument(data)
	if err != nil {
		metrics.DocumentsIngested.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	items, err := collectItems(root)
	if err != nil {
		metrics.DocumentsIngested.WithLabelValues("error").Inc()
		return nil, err
	}

	result := &Result{Products: make([]models.Product, 0, len(items))}
	for _, item := range items {
		product, ok := extractItem(item)
		if !ok {
			result.Skipped++
			continue
		}
		result.Products = append(result.Products, product)
	}

	metrics.DocumentsIngested.WithLabelValues("ok").Inc()
	metrics.ProductsExtracted.Add(float64(len(result.Products)))
	metrics.ItemsSkipped.Add(float64(result.Skipped))

	n.logger.Debug().
		Int("products", len(result.Products)).
		Int("skipped", result.Skipped).
		Msg("document normalized")

	return result, nil
}

// NormalizeValue extracts products from an already-decoded JSON value.
func (n *Normalizer) NormalizeValue(v any) (*Result, error) {
	root := nodeOf(v)

	items, err := collectItems(root)
	if err != nil {
		return nil, err
	}

	result := &Result{Products: make([]models.Product, 0, len(items))}
	for _, item := range items {
		product, ok := extractItem(item)
		if !ok {
			result.Skipped++
			continue
		}
		result.Products = append(result.Products, product)
	}

	return result, nil
}

// collectItems resolves the document's top-level shape into a flat item
// list.
func collectItems(root Node) ([]Node, error) {
	if items, ok := root.Array(); ok {
		return items, nil
	}

	if root.IsObject() {
		// A top-level vendor-schema object is a single item; checked
		// before container keys so vendor documents always route through
		// vendor extraction.
		if root.Path("pal", "style").Exists() {
			return []Node{root}, nil
		}

		for _, key := range containerKeys {
			if items, ok := root.Field(key).Array(); ok {
				return items, nil
			}
		}

		// Unrecognized object: treat as one item.
		return []Node{root}, nil
	}

	return nil, fmt.Errorf("%w: top-level value is neither an object nor an array", ErrInvalidDocument)
}

// extractItem routes one item through the extractor chain.
func extractItem(item Node) (models.Product, bool) {
	for _, ex := range extractorChain {
		if ex.matches(item) {
			return ex.extract(item)
		}
	}
	// Non-object items match no extractor and are skipped.
	return models.Product{}, false
}
