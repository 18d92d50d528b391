package textutil

import (
	"strings"
)

// SequenceSimilarity returns the ratio of matched contiguous subsequences
// between the normalized inputs, in [0,1]. It is symmetric, 1.0 when both
// normalize to the same string and 0.0 when either input is empty.
func SequenceSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	matched := matchingRunes(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingRunes counts matched runes Ratcliff-Obershelp style: find the
// longest common substring, then recurse on the pieces to its left and right.
func matchingRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	total := size
	total += matchingRunes(a[:ai], b[:bi])
	total += matchingRunes(a[ai+size:], b[bi+size:])
	return total
}

// longestCommonSubstring returns the starting offsets and length of the
// longest run of runes common to a and b.
func longestCommonSubstring(a, b []rune) (int, int, int) {
	bestA, bestB, bestLen := 0, 0, 0

	// prev[j] holds the match length ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestLen {
					bestLen = cur[j]
					bestA = i - cur[j]
					bestB = j - cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}

	return bestA, bestB, bestLen
}

// JaccardSimilarity returns word-set intersection over union of the
// normalized, whitespace-tokenized inputs; 0.0 if either set is empty.
func JaccardSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	wordsA := tokenSet(a)
	wordsB := tokenSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}

	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// HybridSimilarity blends sequence and Jaccard similarity 70/30. Sequence
// similarity rewards near-identical phrasing, Jaccard rewards word overlap
// despite reordering.
func HybridSimilarity(a, b string) float64 {
	return SequenceSimilarity(a, b)*0.7 + JaccardSimilarity(a, b)*0.3
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(Normalize(text)) {
		set[w] = struct{}{}
	}
	return set
}
