// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package recommend

import (
	"math"
	"testing"

	"github.com/tomtom215/lookalike/internal/features"
	"github.com/tomtom215/lookalike/internal/models"
)

const epsilon = 1e-9

func textOf(t *testing.T, s string) models.TextFeatures {
	t.Helper()
	return features.TextFeaturesOf(s)
}

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "one empty",
			a:    "red bag",
			b:    "",
			want: 0.0,
		},
		{
			name: "identical",
			a:    "red leather bag",
			b:    "red leather bag",
			want: 1.0,
		},
		{
			name: "disjoint",
			a:    "red bag",
			b:    "blue shoe",
			want: 0.0,
		},
		{
			// Vocabularies {red,bag,leather,tote} and {blue,bag,leather,tote}:
			// Jaccard 3/5, weighted overlap 1, score (0.6+1)/2.
			name: "single word differs",
			a:    "Red Bag leather tote",
			b:    "Blue Bag leather tote",
			want: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(textOf(t, tt.a), textOf(t, tt.b))
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("TextSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextSimilarityWeightedOverlap(t *testing.T) {
	// Common word "bag" with freqs 2 vs 1: weighted = 1/2.
	// Vocabularies {bag,red} vs {bag}: Jaccard = 1/2.
	a := textOf(t, "bag bag red")
	b := textOf(t, "bag")

	got := TextSimilarity(a, b)
	want := (0.5 + 0.5) / 2
	if math.Abs(got-want) > epsilon {
		t.Errorf("TextSimilarity = %v, want %v", got, want)
	}
}

func TestTextSimilaritySymmetric(t *testing.T) {
	a := textOf(t, "elegant silk evening gown")
	b := textOf(t, "casual cotton summer dress")

	if TextSimilarity(a, b) != TextSimilarity(b, a) {
		t.Error("text similarity is not symmetric")
	}
}

func imageFeat(aspect, meanR, meanG, meanB, brightness float64, palette ...models.RGB) *models.ImageFeatures {
	return &models.ImageFeatures{
		AspectRatio:     aspect,
		MeanPerChannel:  [3]float64{meanR, meanG, meanB},
		Brightness:      brightness,
		DominantPalette: palette,
	}
}

func TestImageSimilarityAbsent(t *testing.T) {
	feat := imageFeat(1, 100, 100, 100, 100, models.RGB{R: 96})

	if got := ImageSimilarity(nil, nil); got != 0.0 {
		t.Errorf("both absent = %v, want 0.0", got)
	}
	if got := ImageSimilarity(feat, nil); got != 0.0 {
		t.Errorf("one absent = %v, want 0.0", got)
	}
	if got := ImageSimilarity(nil, feat); got != 0.0 {
		t.Errorf("one absent = %v, want 0.0", got)
	}
}

func TestImageSimilarityIdentical(t *testing.T) {
	feat := imageFeat(1.5, 10, 20, 30, 20, models.RGB{R: 0, G: 0, B: 32})

	got := ImageSimilarity(feat, feat)
	if math.Abs(got-1.0) > epsilon {
		t.Errorf("identical features = %v, want 1.0", got)
	}
}

func TestImageSimilarityComponents(t *testing.T) {
	a := imageFeat(1.0, 0, 0, 0, 0, models.RGB{})
	b := imageFeat(1.5, 255, 255, 255, 255, models.RGB{R: 224, G: 224, B: 224})

	// aspect: 1-0.5=0.5, color: 1-1=0, brightness: 1-1=0, palette: 0.
	want := 0.2 * 0.5
	got := ImageSimilarity(a, b)
	if math.Abs(got-want) > epsilon {
		t.Errorf("ImageSimilarity = %v, want %v", got, want)
	}
}

func TestImageSimilarityClamped(t *testing.T) {
	// Wildly different aspect ratios push the raw score negative.
	a := imageFeat(10, 0, 0, 0, 0)
	b := imageFeat(0.1, 255, 255, 255, 255)

	got := ImageSimilarity(a, b)
	if got < 0 || got > 1 {
		t.Errorf("score %v outside [0,1]", got)
	}
	if got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
}

func TestImageSimilarityEmptyPalette(t *testing.T) {
	a := imageFeat(1, 100, 100, 100, 100)
	b := imageFeat(1, 100, 100, 100, 100)

	// All components perfect except palette overlap, which is 0 when
	// either palette is empty.
	want := aspectWeight + meanColorWeight + brightnessWeight
	got := ImageSimilarity(a, b)
	if math.Abs(got-want) > epsilon {
		t.Errorf("ImageSimilarity = %v, want %v", got, want)
	}
}

func TestCombinedSimilarityWeights(t *testing.T) {
	// Identical text, no images: 0.6*1.0 + 0.4*0.0.
	a := models.FeatureVector{Text: textOf(t, "red leather bag")}
	b := models.FeatureVector{Text: textOf(t, "red leather bag")}

	got := CombinedSimilarity(a, b)
	if math.Abs(got-0.6) > epsilon {
		t.Errorf("CombinedSimilarity = %v, want 0.6", got)
	}
}

func TestCombinedSimilaritySymmetric(t *testing.T) {
	a := models.FeatureVector{
		Text:  textOf(t, "silk scarf"),
		Image: imageFeat(1.2, 50, 60, 70, 60, models.RGB{R: 32, G: 32, B: 64}),
	}
	b := models.FeatureVector{
		Text:  textOf(t, "wool scarf"),
		Image: imageFeat(0.9, 80, 90, 100, 90, models.RGB{R: 64, G: 64, B: 96}),
	}

	if CombinedSimilarity(a, b) != CombinedSimilarity(b, a) {
		t.Error("combined similarity is not symmetric")
	}
}

func TestSimilarityForModes(t *testing.T) {
	a := models.FeatureVector{Text: textOf(t, "red bag")}
	b := models.FeatureVector{Text: textOf(t, "red bag")}

	if got := similarityFor(ModeText, a, b); got != 1.0 {
		t.Errorf("text mode = %v, want 1.0", got)
	}
	if got := similarityFor(ModeImage, a, b); got != 0.0 {
		t.Errorf("image mode = %v, want 0.0 for absent images", got)
	}
	if got := similarityFor(ModeCombined, a, b); math.Abs(got-0.6) > epsilon {
		t.Errorf("combined mode = %v, want 0.6", got)
	}
}
