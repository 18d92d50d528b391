// Package textutil provides text cleaning and similarity scoring utilities.
package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Word characters, whitespace and a fixed punctuation set survive
	// cleaning. \p{M} keeps combining marks so Indic and accented text
	// passes through intact.
	cleanRe   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,!?;:\-'"()]`)
	noPunctRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)
)

// Clean collapses whitespace runs to a single space, strips characters
// outside the whitelist and trims the result. Empty input yields "".
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = whitespaceRe.ReplaceAllString(text, " ")
	text = cleanRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Normalize lower-cases a cleaned copy of text and strips all remaining
// punctuation. For comparison use only, not for display.
func Normalize(text string) string {
	text = Clean(text)
	text = strings.ToLower(text)
	return noPunctRe.ReplaceAllString(text, "")
}
