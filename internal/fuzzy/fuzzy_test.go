package fuzzy

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "identical strings",
			a:        "writing",
			b:        "writing",
			expected: 1.0,
		},
		{
			name:     "completely different",
			a:        "abc",
			b:        "xyz",
			expected: 0.0,
		},
		{
			name:     "pinned pair from the reference implementation",
			a:        "gpt",
			b:        "chatgpt",
			expected: 0.6,
		},
		{
			name:     "single substitution weighted as two edits",
			a:        "cat",
			b:        "bat",
			expected: 1.0 - 2.0/6.0,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 1.0,
		},
		{
			name:     "one empty",
			a:        "writing",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "symmetry check value",
			a:        "chatgpt",
			b:        "gpt",
			expected: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Ratio(%q, %q) = %f, expected %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"writing", "write"},
		{"image generation", "generation"},
		{"código", "codigo"},
	}
	for _, pair := range pairs {
		if got, want := Ratio(pair[0], pair[1]), Ratio(pair[1], pair[0]); !almostEqual(got, want) {
			t.Errorf("Ratio not symmetric for %q/%q: %f vs %f", pair[0], pair[1], got, want)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "shorter string contained in longer",
			a:        "gpt",
			b:        "chatgpt",
			expected: 1.0,
		},
		{
			name:     "identical strings",
			a:        "midjourney",
			b:        "midjourney",
			expected: 1.0,
		},
		{
			name:     "no overlap at all",
			a:        "zzz",
			b:        "writing assistant",
			expected: 0.0,
		},
		{
			name:     "empty query",
			a:        "",
			b:        "anything",
			expected: 0.0,
		},
		{
			name:     "empty target",
			a:        "anything",
			b:        "",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartialRatio(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("PartialRatio(%q, %q) = %f, expected %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestPartialRatioBestWindow(t *testing.T) {
	// "writing" against a long description: the aligned window around the word
	// itself must dominate any other window.
	got := PartialRatio("writing", "an assistant for writing blog posts")
	if !almostEqual(got, 1.0) {
		t.Errorf("expected best-aligned window to score 1.0, got %f", got)
	}

	// A near-miss ("writng") should still score well above unrelated text.
	nearMiss := PartialRatio("writng", "an assistant for writing blog posts")
	unrelated := PartialRatio("writng", "quarterly finance report")
	if nearMiss <= unrelated {
		t.Errorf("expected near-miss (%f) to outscore unrelated text (%f)", nearMiss, unrelated)
	}
	if nearMiss < 0.7 {
		t.Errorf("expected near-miss to score at least 0.7, got %f", nearMiss)
	}
}
