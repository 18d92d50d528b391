package textutil

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "the  earth\t is\n flat", "the earth is flat"},
		{"trims edges", "   vaccines cause autism   ", "vaccines cause autism"},
		{"keeps allowed punctuation", `He said: "it's 50% done, right?"`, `He said: "it's 50 done, right?"`},
		{"strips emoji", "breaking 🚨 news", "breaking news"},
		{"keeps devanagari", "कोविड का टीका खतरनाक है COVID-19", "कोविड का टीका खतरनाक है COVID-19"},
		{"keeps accented latin", "vacuna peligrosa según él", "vacuna peligrosa según él"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "The Moon Landing", "the moon landing"},
		{"strips punctuation", "Really?! No, way.", "really no way"},
		{"collapses whitespace", "a   b\tc", "a b c"},
		{"keeps non-latin letters", "Привет, Мир!", "привет мир"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
