package diff

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Similarity computes the longest-matching-blocks ratio between two texts:
// 2*M/T, where M is the total length of the matched blocks and T the
// combined length of both normalized texts. Identical texts score 1 and
// fully disjoint texts score 0. The ratio is computed independently per
// pair; there is no global alignment across the document.
func Similarity(a, b string) float64 {
	ra := []rune(normalizeText(a))
	rb := []rune(normalizeText(b))
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(total)
}

// cedillaFolds maps the legacy cedilla forms of the Romanian s/t letters to
// their comma-below forms, so encoding drift between the two never counts
// as a text change.
var cedillaFolds = strings.NewReplacer(
	"ş", "ș", // ş -> ș
	"Ş", "Ș", // Ş -> Ș
	"ţ", "ț", // ţ -> ț
	"Ţ", "Ț", // Ţ -> Ț
)

// normalizeText prepares a text for similarity comparison: Unicode NFC,
// cedilla folding, and whitespace collapse.
func normalizeText(s string) string {
	s = norm.NFC.String(s)
	s = cedillaFolds.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// matchingTotal returns the total length of the matching blocks between the
// two rune sequences, found by recursively locating the longest common
// block and repeating on the pieces to its left and right.
func matchingTotal(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	var recurse func(alo, ahi, blo, bhi int) int
	recurse = func(alo, ahi, blo, bhi int) int {
		i, j, size := longestMatch(a, b2j, alo, ahi, blo, bhi)
		if size == 0 {
			return 0
		}
		return size + recurse(alo, i, blo, j) + recurse(i+size, ahi, j+size, bhi)
	}
	return recurse(0, len(a), 0, len(b))
}

// longestMatch finds the longest block of a[alo:ahi] that also occurs in
// b[blo:bhi], preferring the earliest such block on ties.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
