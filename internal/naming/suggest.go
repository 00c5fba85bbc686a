package naming

import "strings"

// minSimilarity is the lowest similarity Suggest accepts.
const minSimilarity = 0.6

// Distance computes the Levenshtein distance between two strings: the
// minimum number of single-rune insertions, deletions or substitutions that
// turn one into the other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows instead of the full matrix.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores two identifiers between 0 and 1 after folding case and
// dropping separators, so "collection_interface" and "collectionInterface"
// score 1.
func Similarity(a, b string) float64 {
	na, nb := fold(a), fold(b)
	if na == "" && nb == "" {
		return 1
	}

	longest := max(len([]rune(na)), len([]rune(nb)))

	return 1 - float64(Distance(na, nb))/float64(longest)
}

func fold(s string) string {
	return strings.ToLower(strings.Join(Tokenize(s), ""))
}

// Suggest returns the known name closest to name, or "" when none is close
// enough. Ties go to the earlier name.
func Suggest(name string, known []string) string {
	best, bestScore := "", 0.0

	for _, k := range known {
		score := Similarity(name, k)
		if score < minSimilarity {
			continue
		}

		if best == "" || score > bestScore {
			best, bestScore = k, score
		}
	}

	return best
}

// DidYouMean formats a suggestion for an error message: ` (did you mean "x"?)`,
// or "" when there is none.
func DidYouMean(name string, known []string) string {
	if s := Suggest(name, known); s != "" {
		return ` (did you mean "` + s + `"?)`
	}

	return ""
}
