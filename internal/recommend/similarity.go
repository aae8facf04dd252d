// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

import (
	"math"

	"github.com/tomtom215/lookalike/internal/models"
)

// Mode selects which similarity metric a query ranks by.
type Mode string

const (
	ModeText     Mode = "text"
	ModeImage    Mode = "image"
	ModeCombined Mode = "combined"
)

// Combined metric weights. Text carries more signal than the coarse
// color statistics, hence the 60/40 split.
const (
	textWeight  = 0.6
	imageWeight = 0.4
)

// Image metric component weights.
const (
	aspectWeight     = 0.2
	meanColorWeight  = 0.3
	brightnessWeight = 0.2
	paletteWeight    = 0.3
)

// TextSimilarity scores two bag-of-words vectors in [0,1]. It averages
// Jaccard overlap of the vocabularies with a frequency-weighted overlap
// (sum of min frequencies over sum of max frequencies across common
// words). Two empty vocabularies are identical (1.0); one empty side
// shares nothing (0.0). The metric is symmetric.
func TextSimilarity(a, b models.TextFeatures) float64 {
	if len(a.WordFrequency) == 0 && len(b.WordFrequency) == 0 {
		return 1.0
	}
	if len(a.WordFrequency) == 0 || len(b.WordFrequency) == 0 {
		return 0.0
	}

	intersection := 0
	weightedSum := 0
	totalWeight := 0
	for word, freqA := range a.WordFrequency {
		freqB, ok := b.WordFrequency[word]
		if !ok {
			continue
		}
		intersection++
		if freqA < freqB {
			weightedSum += freqA
			totalWeight += freqB
		} else {
			weightedSum += freqB
			totalWeight += freqA
		}
	}

	union := len(a.WordFrequency) + len(b.WordFrequency) - intersection
	jaccard := float64(intersection) / float64(union)

	weighted := 0.0
	if totalWeight > 0 {
		weighted = float64(weightedSum) / float64(totalWeight)
	}

	return (jaccard + weighted) / 2
}

// ImageSimilarity scores two image feature sets in [0,1]. An absent
// image on either side scores 0.0; a missing image is treated as
// maximally dissimilar rather than neutral.
func ImageSimilarity(a, b *models.ImageFeatures) float64 {
	if a == nil || b == nil {
		return 0.0
	}

	aspectSim := 1 - math.Abs(a.AspectRatio-b.AspectRatio)

	colorDist := 0.0
	for ch := 0; ch < 3; ch++ {
		colorDist += math.Abs(a.MeanPerChannel[ch]-b.MeanPerChannel[ch]) / 255
	}
	colorSim := 1 - colorDist/3

	brightnessSim := 1 - math.Abs(a.Brightness-b.Brightness)/255

	paletteSim := paletteOverlap(a.DominantPalette, b.DominantPalette)

	score := aspectSim*aspectWeight +
		colorSim*meanColorWeight +
		brightnessSim*brightnessWeight +
		paletteSim*paletteWeight

	return math.Max(0, math.Min(1, score))
}

// CombinedSimilarity blends text and image similarity with the fixed
// 60/40 weighting. Products without images therefore cap at 0.6.
func CombinedSimilarity(a, b models.FeatureVector) float64 {
	textSim := TextSimilarity(a.Text, b.Text)
	imageSim := ImageSimilarity(a.Image, b.Image)
	return textSim*textWeight + imageSim*imageWeight
}

// similarityFor dispatches on mode. Unknown modes rank as combined.
func similarityFor(mode Mode, a, b models.FeatureVector) float64 {
	switch mode {
	case ModeText:
		return TextSimilarity(a.Text, b.Text)
	case ModeImage:
		return ImageSimilarity(a.Image, b.Image)
	default:
		return CombinedSimilarity(a, b)
	}
}

// paletteOverlap returns the Jaccard overlap of two dominant palettes,
// or 0 when either palette is empty.
func paletteOverlap(a, b []models.RGB) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := make(map[models.RGB]struct{}, len(a))
	for _, c := range a {
		setA[c] = struct{}{}
	}
	setB := make(map[models.RGB]struct{}, len(b))
	for _, c := range b {
		setB[c] = struct{}{}
	}

	intersection := 0
	for c := range setA {
		if _, ok := setB[c]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}
