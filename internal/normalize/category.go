// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import "strings"

// DefaultCategory is assigned when no explicit category exists and no
// keyword matches the product name.
const DefaultCategory = "other"

// categoryRule maps a set of name keywords to a category. Rules are
// evaluated in order; the first keyword hit wins.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"dress", []string{"dress", "gown", "frock"}},
	{"shirt", []string{"shirt", "blouse", "top", "tee"}},
	{"pants", []string{"pants", "trousers", "jeans", "leggings"}},
	{"shoes", []string{"shoe", "boot", "sandal", "sneaker"}},
	{"bag", []string{"bag", "purse", "handbag", "tote"}},
	{"jacket", []string{"jacket", "blazer", "coat", "outerwear"}},
	{"accessories", []string{"belt", "scarf", "hat", "jewelry", "watch"}},
	{"skirt", []string{"skirt", "mini", "midi", "maxi"}},
}

// InferCategory derives a category from a product name via case-insensitive
// substring matching against the keyword table. Returns DefaultCategory
// when nothing matches or the name is empty.
func InferCategory(name string) string {
	if name == "" {
		return DefaultCategory
	}

	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}

	return DefaultCategory
}
