// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package normalize

import (
	"testing"

	"github.com/goccy/go-json"
)

func mustNode(t *testing.T, doc string) Node {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return nodeOf(v)
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/a.jpg", true},
		{"https://example.com/a.JPEG?size=large", true},
		{"https://example.com/a.webp", true},
		{"https://cdn.example.com/assets/1234", true},
		{"https://example.com/photo/1234", true},
		{"https://media.example.com/1234", true},
		{"https://example.com/product/1234", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := isImageURL(tt.url); got != tt.want {
				t.Errorf("isImageURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestFindImageURL_SearchOrder(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "pal digitalAssets preferred over top level",
			doc: `{
				"pal": {"digitalAssets": [{"assetName": {"linkURL": "https://x.com/pal.jpg"}}]},
				"digitalAssets": [{"linkURL": "https://x.com/top.jpg"}],
				"image": "https://x.com/generic.jpg"
			}`,
			want: "https://x.com/pal.jpg",
		},
		{
			name: "top-level digitalAssets before generic fields",
			doc: `{
				"digitalAssets": [{"linkURL": "https://x.com/top.jpg"}],
				"image": "https://x.com/generic.jpg"
			}`,
			want: "https://x.com/top.jpg",
		},
		{
			name: "assetName linkURL preferred over direct linkURL",
			doc: `{
				"digitalAssets": [{"assetName": {"linkURL": "https://x.com/nested.jpg"}, "linkURL": "https://x.com/direct.jpg"}]
			}`,
			want: "https://x.com/nested.jpg",
		},
		{
			name: "asset URL-like fields as last asset resort",
			doc: `{
				"digitalAssets": [{"src": "https://x.com/src.png"}]
			}`,
			want: "https://x.com/src.png",
		},
		{
			name: "unacceptable candidate skipped for next asset",
			doc: `{
				"digitalAssets": [
					{"linkURL": "https://example.com/not-a-picture"},
					{"linkURL": "https://x.com/ok.gif"}
				]
			}`,
			want: "https://x.com/ok.gif",
		},
		{
			name: "generic field fallback",
			doc:  `{"thumbnail": "https://x.com/t.jpg"}`,
			want: "https://x.com/t.jpg",
		},
		{
			name: "generic field failing heuristic yields nothing",
			doc:  `{"image": "https://example.com/page"}`,
			want: "",
		},
		{
			name: "no candidates",
			doc:  `{"id": "1"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findImageURL(mustNode(t, tt.doc)); got != tt.want {
				t.Errorf("findImageURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_ImageDiscoveryIntegration(t *testing.T) {
	doc := `[{"id": "p1", "name": "Tote", "digitalAssets": [{"assetName": {"linkURL": "https://cdn.x.com/p1.jpg"}}]}]`

	result, err := newTestNormalizer().Normalize([]byte(doc))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if got := result.Products[0].ImageURL; got != "https://cdn.x.com/p1.jpg" {
		t.Errorf("ImageURL = %q", got)
	}
}
