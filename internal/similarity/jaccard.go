package similarity

import "strings"

// DuplicateThreshold is the word-set overlap above which two texts are duplicates.
const DuplicateThreshold = 0.8

// Jaccard returns the intersection-over-union of the lowercase word sets of
// a and b. It is 0 when either text has no words.
func Jaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

// Duplicate reports whether a and b overlap strictly more than DuplicateThreshold.
func Duplicate(a, b string) bool {
	return Jaccard(a, b) > DuplicateThreshold
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
