// Lookalike - Product Catalog Normalization and Similarity Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lookalike

package features

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Red BAG",
			want:  "red bag",
		},
		{
			name:  "strips html tags to spaces",
			input: "<p>Elegant</p> clutch",
			want:  " elegant  clutch",
		},
		{
			name:  "drops punctuation and symbols",
			input: "hand-crafted, 100% silk!",
			want:  "handcrafted 100 silk",
		},
		{
			name:  "keeps digits",
			input: "Model 3000 XL",
			want:  "model 3000 xl",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeText(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("<b>Red</b>  Leather   Bag!")
	want := []string{"red", "leather", "bag"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTextFeaturesOf(t *testing.T) {
	feat := TextFeaturesOf("Elegant Evening Bag elegant silk")

	if feat.TokenCount != 5 {
		t.Errorf("TokenCount = %d, want 5", feat.TokenCount)
	}
	if feat.DistinctTokenCount != 4 {
		t.Errorf("DistinctTokenCount = %d, want 4", feat.DistinctTokenCount)
	}
	if got := feat.WordFrequency["elegant"]; got != 2 {
		t.Errorf("WordFrequency[elegant] = %d, want 2", got)
	}

	wantScores := map[string]int{
		"luxury":   0,
		"material": 1,
		"style":    2,
		"occasion": 1,
		"size":     0,
	}
	if !reflect.DeepEqual(feat.KeywordScores, wantScores) {
		t.Errorf("KeywordScores = %v, want %v", feat.KeywordScores, wantScores)
	}
}

func TestTextFeaturesOfEmpty(t *testing.T) {
	feat := TextFeaturesOf("")

	if feat.TokenCount != 0 || feat.DistinctTokenCount != 0 {
		t.Errorf("empty text produced counts %d/%d", feat.TokenCount, feat.DistinctTokenCount)
	}
	if len(feat.WordFrequency) != 0 {
		t.Errorf("empty text produced frequencies %v", feat.WordFrequency)
	}
	for group, score := range feat.KeywordScores {
		if score != 0 {
			t.Errorf("group %s scored %d on empty text", group, score)
		}
	}
}

func TestKeywordScoreCountsRepeats(t *testing.T) {
	feat := TextFeaturesOf("luxury luxury premium")
	if got := feat.KeywordScores["luxury"]; got != 3 {
		t.Errorf("luxury score = %d, want 3", got)
	}
}
