package dedup

import (
	"math"
	"sort"
	"strings"
)

// Similarity primitives used by the duplicate classifier. All functions
// here are pure and deterministic.

// stopWords are promotional noise words stripped before any comparison,
// so "Live:", "Tour" and trailing "Tickets" never defeat a match.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "at": {}, "in": {}, "on": {}, "of": {},
	"and": {}, "or": {}, "live": {}, "tour": {}, "ticket": {}, "tickets": {},
	"present": {}, "presents": {}, "featuring": {}, "feat": {}, "ft": {},
}

// maxEditLength caps the strings fed to the O(n*m) edit-distance pass;
// longer inputs fall back to word-overlap similarity.
const maxEditLength = 120

// normalize lowercases, strips punctuation and apostrophes, removes
// stop words and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			// Drop apostrophes entirely so "don't" becomes "dont"
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, ok := stopWords[w]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// fingerprint digests a name into its first four significant words in
// alphabetical order. Catches reordered titles such as
// "Live: John Legend" vs "John Legend Live".
func fingerprint(s string) string {
	var words []string
	for _, w := range strings.Fields(normalize(s)) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}

// editSimilarity returns a normalized Levenshtein similarity in [0,1].
// Wildly different lengths short-circuit to a cheap penalty, and very
// long strings fall back to word overlap to keep the cost bounded.
func editSimilarity(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)
	if na == nb {
		return 1
	}
	if len(na) == 0 || len(nb) == 0 {
		return 0
	}

	longer := len(na)
	shorter := len(nb)
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	lenRatio := float64(shorter) / float64(longer)
	if lenRatio < 0.4 {
		return lenRatio * 0.5
	}
	if longer > maxEditLength {
		return wordSimilarity(a, b)
	}

	return 1 - float64(levenshtein(na, nb))/float64(longer)
}

// levenshtein computes edit distance with a rolling two-row matrix
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// wordSimilarity is the Jaccard index over the significant words of the
// two strings. Two empty word sets are vacuously identical.
func wordSimilarity(a, b string) float64 {
	wordsA := significantWords(a)
	wordsB := significantWords(b)
	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1
	}

	intersection := 0
	union := len(wordsB)
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func significantWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(normalize(s)) {
		if len(w) > 1 {
			words[w] = struct{}{}
		}
	}
	return words
}

// containsOther reports whether one name is a non-trivial substring of
// the other after normalization.
func containsOther(a, b string) bool {
	na := normalize(a)
	nb := normalize(b)
	if len(na) < 4 || len(nb) < 4 {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// earthRadiusMiles is the mean Earth radius used by the haversine formula
const earthRadiusMiles = 3959.0

// geoDistanceMiles returns the great-circle distance between two
// coordinates in miles.
func geoDistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
