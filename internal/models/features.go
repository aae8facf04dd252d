// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package models

// TextFeatures summarizes the normalized name + description of a product.
type TextFeatures struct {
	// WordFrequency maps each normalized token to its occurrence count.
	WordFrequency map[string]int `json:"word_frequency"`

	// TokenCount is the total number of tokens, DistinctTokenCount the
	// number of unique ones.
	TokenCount         int `json:"token_count"`
	DistinctTokenCount int `json:"distinct_token_count"`

	// KeywordScores sums token frequencies per fixed keyword group
	// (luxury, material, style, occasion, size). Auxiliary signal only;
	// never merged into WordFrequency.
	KeywordScores map[string]int `json:"keyword_scores"`
}

// RGB is a quantized color triple from the dominant-palette computation.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ImageFeatures summarizes the visual statistics of a decoded product image.
type ImageFeatures struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`

	// MeanPerChannel and StdPerChannel are indexed R, G, B.
	MeanPerChannel [3]float64 `json:"mean_per_channel"`
	StdPerChannel  [3]float64 `json:"std_per_channel"`

	// Brightness is the mean over all channels and pixels; Contrast the
	// standard deviation over the same population.
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`

	// DominantPalette holds up to 5 quantized colors, most frequent first.
	DominantPalette []RGB `json:"dominant_palette"`
}

// FeatureVector is the per-product summary similarity operates on.
// It is computed lazily on first need and cached for the session; it is
// never persisted across runs.
type FeatureVector struct {
	ProductID  string       `json:"product_id"`
	CategoryID string       `json:"category_id"`
	Text       TextFeatures `json:"text"`

	// Image is nil when no image URL exists or the fetch/decode failed.
	// Absence is a distinct state from a zero-valued image; similarity
	// scores an absent side as 0.0 rather than comparing against zeros.
	Image *ImageFeatures `json:"image,omitempty"`
}

// HasImage reports whether visual features were extracted.
func (fv *FeatureVector) HasImage() bool {
	return fv.Image != nil
}
