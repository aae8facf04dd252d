// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package features

import (
	"regexp"
	"strings"

	"github.com/tomtom215/lookalike/internal/models"
)

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]+>`)
	nonAlphanumPattern = regexp.MustCompile(`[^a-z0-9 ]`)
)

// keywordGroups maps a named group to the tokens that score it. Scores
// count exact token occurrences, so normalization must run first.
var keywordGroups = map[string][]string{
	"luxury":   {"luxury", "premium", "designer", "couture", "exclusive"},
	"material": {"leather", "silk", "crystal", "gold", "silver", "brass"},
	"style":    {"elegant", "sophisticated", "classic", "modern", "vintage"},
	"occasion": {"evening", "formal", "casual", "party", "wedding"},
	"size":     {"mini", "small", "medium", "large", "oversized"},
}

// NormalizeText lowercases the input, replaces HTML tags with spaces, and
// drops every character outside [a-z0-9 ]. The result is idempotent:
// normalizing already-normalized text returns it unchanged.
func NormalizeText(text string) string {
	text = htmlTagPattern.ReplaceAllString(strings.ToLower(text), " ")
	return nonAlphanumPattern.ReplaceAllString(text, "")
}

// Tokenize splits normalized text on whitespace runs.
func Tokenize(text string) []string {
	return strings.Fields(NormalizeText(text))
}

// TextFeaturesOf builds the bag-of-words features for a product's
// combined name and description text.
func TextFeaturesOf(text string) models.TextFeatures {
	words := Tokenize(text)

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}

	scores := make(map[string]int, len(keywordGroups))
	for group, keywords := range keywordGroups {
		total := 0
		for _, kw := range keywords {
			total += freq[kw]
		}
		scores[group] = total
	}

	return models.TextFeatures{
		WordFrequency:      freq,
		TokenCount:         len(words),
		DistinctTokenCount: len(freq),
		KeywordScores:      scores,
	}
}
