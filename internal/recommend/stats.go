// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

// CatalogStats summarizes the loaded catalog.
type CatalogStats struct {
	TotalProducts      int            `json:"total_products"`
	SkippedItems       int            `json:"skipped_items"`
	ProductsWithImages int            `json:"products_with_images"`
	Categories         map[string]int `json:"categories"`
	AvgTextLength      float64        `json:"avg_text_length"`
	ProductIDs         []string       `json:"product_ids"`
}

// Stats computes catalog-level statistics: category distribution, image
// coverage, and the average combined name+description length in
// characters. Product ids are listed in ingestion order.
func (e *Engine) Stats() CatalogStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := CatalogStats{
		TotalProducts: len(e.products),
		SkippedItems:  e.skipped,
		Categories:    make(map[string]int),
		ProductIDs:    make([]string, 0, len(e.products)),
	}

	totalLength := 0
	for i, p := range e.products {
		stats.Categories[p.CategoryID]++
		stats.ProductIDs = append(stats.ProductIDs, p.ID)
		totalLength += len(p.CombinedText())

		if e.vectors[i].HasImage() {
			stats.ProductsWithImages++
		}
	}

	if len(e.products) > 0 {
		stats.AvgTextLength = float64(totalLength) / float64(len(e.products))
	}

	return stats
}
