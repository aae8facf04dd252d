// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import "strings"

// imageExtensions are URL substrings accepted as image file extensions.
var imageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff",
}

// imageHostPatterns accept URLs whose host or path suggests image hosting
// even without a recognizable extension.
var imageHostPatterns = []string{
	"image", "photo", "img", "media", "cdn",
}

// genericImageFields are top-level item fields checked when no digital
// asset yields a URL. Ordered; only the first present field is considered.
var genericImageFields = []string{
	"image", "imageUrl", "thumbnail", "photo", "picture", "img",
}

// assetURLFields are candidate link fields inside a digital asset entry,
// tried after the preferred assetName.linkURL and linkURL locations.
var assetURLFields = []string{
	"url", "imageUrl", "src", "href",
}

// isImageURL is the acceptance heuristic for discovered URL candidates:
// a known image extension anywhere in the URL, or an image-hosting keyword
// in the lowercased URL.
func isImageURL(url string) bool {
	if url == "" {
		return false
	}

	lower := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, pattern := range imageHostPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// findImageURL discovers an image URL for an item, searching in order:
//
//  1. a digitalAssets array nested under the item's "pal" object
//  2. a top-level digitalAssets array
//  3. generic top-level image fields
//
// The first candidate passing isImageURL wins; no further search happens
// once a URL is accepted. Returns "" when nothing acceptable exists.
func findImageURL(item Node) string {
	if assets, ok := item.Path("pal", "digitalAssets").Array(); ok {
		if url := scanAssets(assets, false); url != "" {
			return url
		}
	}

	if assets, ok := item.Field("digitalAssets").Array(); ok {
		if url := scanAssets(assets, true); url != "" {
			return url
		}
	}

	if url := item.FirstOf(genericImageFields...).Text(); isImageURL(url) {
		return url
	}

	return ""
}

// scanAssets walks digital asset entries looking for an acceptable link.
// Within an entry the nested assetName.linkURL is preferred, then a direct
// linkURL; top-level asset arrays additionally fall back to other URL-like
// field names.
func scanAssets(assets []Node, tryGenericFields bool) string {
	for _, asset := range assets {
		if !asset.IsObject() {
			continue
		}

		if url := asset.Path("assetName", "linkURL").Text(); isImageURL(url) {
			return url
		}

		if url := asset.Field("linkURL").Text(); isImageURL(url) {
			return url
		}

		if tryGenericFields {
			if url := asset.FirstOf(assetURLFields...).Text(); isImageURL(url) {
				return url
			}
		}
	}

	return ""
}
