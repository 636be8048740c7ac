package supplier

import "strings"

// minTokenLen excludes short tokens from similarity: two- and one-letter
// words are mostly noise left over after stopword removal.
const minTokenLen = 3

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if len(w) >= minTokenLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// Similarity returns the Dice coefficient of the two strings' token sets:
// 2*|A∩B| / (|A|+|B|), over words of at least three characters. Inputs are
// expected to be normalized keys.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(setA)+len(setB))
}
