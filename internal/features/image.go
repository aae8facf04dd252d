// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package features

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"os"
	"sort"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tomtom215/lookalike/internal/models"
)

// paletteSampleSize bounds the number of pixels sampled for the
// dominant palette.
const paletteSampleSize = 1000

// paletteSize is the number of dominant colors kept per image.
const paletteSize = 5

// quantizeStep buckets each channel into multiples of 32 (8 per channel).
const quantizeStep = 32

// ImageFeaturesOf computes color statistics and the dominant palette of
// img. Pixels are coerced to 3-channel RGB; alpha is discarded. rng
// drives palette sampling and must not be shared without the caller
// serializing access.
func ImageFeaturesOf(img image.Image, rng *rand.Rand) models.ImageFeatures {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	pixels := rgbPixels(img)

	feat := models.ImageFeatures{
		Width:  width,
		Height: height,
	}
	if height > 0 {
		feat.AspectRatio = float64(width) / float64(height)
	}
	if len(pixels) == 0 {
		return feat
	}

	n := float64(len(pixels))
	var sum, sumSq [3]float64
	for _, px := range pixels {
		for ch, v := range [3]uint8{px.R, px.G, px.B} {
			f := float64(v)
			sum[ch] += f
			sumSq[ch] += f * f
		}
	}

	var allSum, allSumSq float64
	for ch := 0; ch < 3; ch++ {
		mean := sum[ch] / n
		feat.MeanPerChannel[ch] = mean
		feat.StdPerChannel[ch] = math.Sqrt(math.Max(0, sumSq[ch]/n-mean*mean))
		allSum += sum[ch]
		allSumSq += sumSq[ch]
	}

	total := n * 3
	feat.Brightness = allSum / total
	feat.Contrast = math.Sqrt(math.Max(0, allSumSq/total-feat.Brightness*feat.Brightness))

	feat.DominantPalette = dominantPalette(pixels, rng)

	return feat
}

// ImageFeaturesFromFile opens and decodes path, then extracts features.
func ImageFeaturesFromFile(path string, rng *rand.Rand) (models.ImageFeatures, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImageFeatures{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return models.ImageFeatures{}, fmt.Errorf("decode image: %w", err)
	}

	return ImageFeaturesOf(img, rng), nil
}

// rgbPixels flattens the image into row-major 8-bit RGB triples.
func rgbPixels(img image.Image) []models.RGB {
	bounds := img.Bounds()
	pixels := make([]models.RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, models.RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}
	return pixels
}

// dominantPalette samples up to paletteSampleSize pixels without
// replacement, quantizes each channel to the lower multiple of 32, and
// returns the top colors by sample frequency. Equal counts keep the
// color that appeared first in the sample.
func dominantPalette(pixels []models.RGB, rng *rand.Rand) []models.RGB {
	sample := samplePixels(pixels, paletteSampleSize, rng)
	if len(sample) == 0 {
		return nil
	}

	type colorCount struct {
		color models.RGB
		count int
		first int
	}

	counts := make(map[models.RGB]*colorCount, len(sample))
	order := make([]*colorCount, 0, len(sample))
	for i, px := range sample {
		q := models.RGB{
			R: px.R / quantizeStep * quantizeStep,
			G: px.G / quantizeStep * quantizeStep,
			B: px.B / quantizeStep * quantizeStep,
		}
		cc, ok := counts[q]
		if !ok {
			cc = &colorCount{color: q, first: i}
			counts[q] = cc
			order = append(order, cc)
		}
		cc.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	limit := paletteSize
	if len(order) < limit {
		limit = len(order)
	}
	palette := make([]models.RGB, limit)
	for i := 0; i < limit; i++ {
		palette[i] = order[i].color
	}
	return palette
}

// samplePixels draws size pixels uniformly without replacement using a
// sparse Fisher-Yates shuffle, keeping memory proportional to the sample
// rather than the image.
func samplePixels(pixels []models.RGB, size int, rng *rand.Rand) []models.RGB {
	n := len(pixels)
	if size >= n {
		out := make([]models.RGB, n)
		copy(out, pixels)
		return out
	}

	swapped := make(map[int]int, size)
	out := make([]models.RGB, size)
	for i := 0; i < size; i++ {
		j := i + rng.Intn(n-i)

		pi, ok := swapped[i]
		if !ok {
			pi = i
		}
		pj, ok := swapped[j]
		if !ok {
			pj = j
		}

		out[i] = pixels[pj]
		swapped[j] = pi
	}
	return out
}
