// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/lookalike/internal/metrics"
)

// maxCommonWords bounds the shared-vocabulary sample in an explanation.
const maxCommonWords = 5

// Explanation breaks a similarity score down into its parts.
type Explanation struct {
	ProductA      string   `json:"product_a"`
	ProductB      string   `json:"product_b"`
	TextScore     float64  `json:"text_score"`
	ImageScore    float64  `json:"image_score"`
	CombinedScore float64  `json:"combined_score"`
	CommonWords   []string `json:"common_words,omitempty"`
	SameCategory  bool     `json:"same_category"`
	CategoryID    string   `json:"category_id,omitempty"`
}

// Explain reports why two products score the way they do: the per-metric
// scores, a sorted sample of shared vocabulary, and whether the products
// share a category. Symmetric in its arguments up to the id labels.
func (e *Engine) Explain(idA, idB string) (Explanation, error) {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.WithLabelValues("explain").Observe(time.Since(start).Seconds())
	}()

	e.mu.RLock()
	defer e.mu.RUnlock()

	idxA, ok := e.index[idA]
	if !ok {
		return Explanation{}, fmt.Errorf("%w: %q", ErrProductNotFound, idA)
	}
	idxB, ok := e.index[idB]
	if !ok {
		return Explanation{}, fmt.Errorf("%w: %q", ErrProductNotFound, idB)
	}

	vecA, vecB := e.vectors[idxA], e.vectors[idxB]
	prodA, prodB := e.products[idxA], e.products[idxB]

	exp := Explanation{
		ProductA:     prodA.ID,
		ProductB:     prodB.ID,
		TextScore:    TextSimilarity(vecA.Text, vecB.Text),
		ImageScore:   ImageSimilarity(vecA.Image, vecB.Image),
		CommonWords:  commonWords(vecA.Text.WordFrequency, vecB.Text.WordFrequency),
		SameCategory: prodA.CategoryID == prodB.CategoryID,
	}
	exp.CombinedScore = exp.TextScore*textWeight + exp.ImageScore*imageWeight
	if exp.SameCategory {
		exp.CategoryID = prodA.CategoryID
	}

	return exp, nil
}

// commonWords returns up to maxCommonWords words present in both
// frequency maps, sorted for stable output.
func commonWords(a, b map[string]int) []string {
	var common []string
	for word := range a {
		if _, ok := b[word]; ok {
			common = append(common, word)
		}
	}
	sort.Strings(common)

	if len(common) > maxCommonWords {
		common = common[:maxCommonWords]
	}
	return common
}
