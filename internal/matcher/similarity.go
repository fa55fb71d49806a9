package matcher

import (
	"strings"
	"unicode"
)

// Similarity computes Jaccard similarity over the normalized word sets of
// two strings: intersection size over union size, 0 when either set is
// empty. Duplicate words collapse, so word order and repetition carry no
// weight.
func Similarity(a, b string) float64 {
	wordsA := normalize(a)
	wordsB := normalize(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

// normalize lower-cases the text, strips everything that is not a word
// character or whitespace, and collects the remaining words into a set.
func normalize(text string) map[string]bool {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := make(map[string]bool)
	for _, w := range strings.Fields(b.String()) {
		words[w] = true
	}
	return words
}
