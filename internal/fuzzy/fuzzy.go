// Package fuzzy provides normalized string-similarity ratios used by the
// relevance engine. Ratio follows Levenshtein-ratio semantics (insert/delete
// weighted edits over runes) and PartialRatio scores the best-aligned
// substring of the longer input, so "gpt" scores highly against "chatgpt".
package fuzzy

// Ratio returns the normalized similarity of a and b in [0, 1].
// It is computed as 1 - dist/(len(a)+len(b)) where dist is the edit distance
// with substitutions weighted as a delete plus an insert (cost 2). This makes
// Ratio("gpt", "chatgpt") = 0.6, matching the conventional Levenshtein ratio.
// Unicode is handled by working with runes.
func Ratio(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 && lenB == 0 {
		return 1.0
	}
	if lenA == 0 || lenB == 0 {
		return 0.0
	}

	// Two-row DP over the weighted edit distance matrix.
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 2 // Substitution counts as delete + insert
			}

			deletion := prevRow[j] + 1
			insertion := currRow[j-1] + 1
			substitution := prevRow[j-1] + cost

			currRow[j] = min3(deletion, insertion, substitution)
		}

		prevRow, currRow = currRow, prevRow
	}

	dist := prevRow[lenB]
	return 1.0 - float64(dist)/float64(lenA+lenB)
}

// PartialRatio returns the best Ratio between the shorter of a and b and any
// contiguous window of the longer one with the same rune length. It answers
// "how well does the shorter string match somewhere inside the longer one"
// and returns a value in [0, 1]. Empty input scores 0.
func PartialRatio(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	if len(runesA) == 0 || len(runesB) == 0 {
		return 0.0
	}

	shorter, longer := runesA, runesB
	if len(runesA) > len(runesB) {
		shorter, longer = runesB, runesA
	}

	short := string(shorter)
	window := len(shorter)

	best := 0.0
	for start := 0; start+window <= len(longer); start++ {
		score := Ratio(short, string(longer[start:start+window]))
		if score > best {
			best = score
		}
		if best == 1.0 {
			break // Exact window match, cannot improve
		}
	}
	return best
}

// min3 is a helper function to find the minimum of three integers
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
