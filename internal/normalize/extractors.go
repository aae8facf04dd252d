// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import (
	"sort"

	"github.com/tomtom215/lookalike/internal/models"
)

// extractor turns one source item of a recognized shape into a canonical
// Product. Extractors form an ordered chain: the first whose matches()
// accepts an item extracts it, so a vendor-schema item is never routed
// through generic extraction as well.
type extractor interface {
	// matches reports whether this extractor recognizes the item's shape.
	matches(item Node) bool

	// extract builds a Product from the item. ok is false when the item
	// cannot resolve both a non-empty id and name after all fallbacks.
	extract(item Node) (product models.Product, ok bool)
}

// extractorChain is the fixed priority order: vendor schema first.
var extractorChain = []extractor{
	vendorExtractor{},
	genericExtractor{},
}

// Ordered fallback key lists for generic extraction.
var (
	idKeys          = []string{"id", "productId", "styleId", "sku"}
	nameKeys        = []string{"name", "productName", "styleName", "title"}
	descriptionKeys = []string{"description", "shortDescription", "longDescription"}
	categoryKeys    = []string{"category", "categoryId", "department", "classification"}
)

// vendorExtractor handles the vendor schema identified by a nested
// pal.style path. Field locations are fixed by the vendor's export format:
// the web product id lives under the variation's storefronts, the sku id
// is the fallback, and name/description/classification live on the style.
type vendorExtractor struct{}

func (vendorExtractor) matches(item Node) bool {
	return item.Path("pal", "style").Exists()
}

func (vendorExtractor) extract(item Node) (models.Product, bool) {
	pal := item.Field("pal")
	style := pal.Field("style")

	id := storefrontWebProductID(pal)
	if id == "" {
		id = pal.Path("sku", "id").Text()
	}

	name := style.Field("name").Text()
	if id == "" || name == "" {
		return models.Product{}, false
	}

	category := style.Path("classification", "name").Text()
	if category == "" {
		category = deepestTaxonomyName(item.Field("taxonomies"))
	}
	if category == "" {
		category = InferCategory(name)
	}

	return models.Product{
		ID:          id,
		Name:        name,
		Description: style.Field("shortDescription").Text(),
		CategoryID:  category,
		ImageURL:    findImageURL(item),
		RawPayload:  item.Value(),
	}, true
}

// storefrontWebProductID walks pal.variation.storeFronts.*.webProduct[0]
// for a webProductID. Storefront keys are visited in sorted order so the
// result is deterministic; the first storefront with a web product wins.
func storefrontWebProductID(pal Node) string {
	storeFronts, ok := pal.Path("variation", "storeFronts").Value().(map[string]any)
	if !ok {
		return ""
	}

	keys := make([]string, 0, len(storeFronts))
	for k := range storeFronts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		store := nodeOf(storeFronts[k])
		if id := store.Field("webProduct").Index(0).Field("webProductID").Text(); id != "" {
			return id
		}
	}

	return ""
}

// deepestTaxonomyName returns the name of the taxonomy entry with the
// highest levelNumber, the most specific classification. Entries without a
// levelNumber count as level 0; on a tie the earliest entry wins.
func deepestTaxonomyName(taxonomies Node) string {
	entries, ok := taxonomies.Array()
	if !ok || len(entries) == 0 {
		return ""
	}

	best := entries[0]
	bestLevel, _ := best.Field("levelNumber").Float()
	for _, entry := range entries[1:] {
		level, _ := entry.Field("levelNumber").Float()
		if level > bestLevel {
			best = entry
			bestLevel = level
		}
	}

	return best.Field("name").Text()
}

// genericExtractor handles arbitrary item objects via ordered fallback key
// lists. It accepts any object; it sits last in the chain.
type genericExtractor struct{}

func (genericExtractor) matches(item Node) bool {
	return item.IsObject()
}

func (genericExtractor) extract(item Node) (models.Product, bool) {
	id := item.FirstOf(idKeys...).Text()
	name := item.FirstOf(nameKeys...).Text()
	if id == "" || name == "" {
		return models.Product{}, false
	}

	category := item.FirstOf(categoryKeys...).Text()
	if category == "" {
		category = InferCategory(name)
	}

	return models.Product{
		ID:          id,
		Name:        name,
		Description: item.FirstOf(descriptionKeys...).Text(),
		CategoryID:  category,
		ImageURL:    findImageURL(item),
		RawPayload:  item.Value(),
	}, true
}
