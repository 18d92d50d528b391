package textutil

import (
	"math"
	"testing"
)

func TestSequenceSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "the earth is round", "the earth is round", 1.0},
		{"empty left", "", "anything", 0.0},
		{"empty right", "anything", "", 0.0},
		{"case insensitive", "Water Boils", "water boils", 1.0},
		{"identical non-ascii", "कोविड का टीका", "कोविड का टीका", 1.0},
		{"shared run", "abcd", "bcde", 0.75},
		{"disjoint", "xxxx", "yyyy", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SequenceSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SequenceSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSequenceSimilaritySymmetric(t *testing.T) {
	a := "vaccines cause autism in children"
	b := "autism is caused by vaccines"
	if x, y := SequenceSimilarity(a, b), SequenceSimilarity(b, a); math.Abs(x-y) > 1e-9 {
		t.Errorf("not symmetric: %v vs %v", x, y)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "the cat sat", "the cat sat", 1.0},
		{"half overlap", "the cat sat", "the dog sat", 0.5},
		{"punctuation ignored", "hello, world!", "hello world", 1.0},
		{"empty", "", "the cat", 0.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JaccardSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JaccardSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHybridSimilarity(t *testing.T) {
	if got := HybridSimilarity("same text", "same text"); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical inputs = %v, want 1.0", got)
	}
	if got := HybridSimilarity("", "something"); got != 0.0 {
		t.Errorf("empty input = %v, want 0.0", got)
	}

	got := HybridSimilarity("the earth is flat", "the earth is not flat")
	if got <= 0.0 || got >= 1.0 {
		t.Errorf("partial overlap = %v, want value strictly inside (0,1)", got)
	}
}
