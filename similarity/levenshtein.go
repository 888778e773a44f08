package similarity

import "errors"

// ErrInputTooLarge reports that an input exceeds MaxInputLen and the distance
// computation was refused rather than attempting the allocation. It is the
// only non-nil error Distance returns; valid distances are always >= 0.
var ErrInputTooLarge = errors.New("similarity: input exceeds MaxInputLen")

// MaxInputLen bounds the byte length of either Distance input. Callers with
// trusted inputs may raise it.
var MaxInputLen = 1 << 20

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-byte insertions, deletions, and substitutions that
// transform one into the other.
//
// The dynamic program keeps only two rows sized by the shorter input, so
// memory stays O(min(len(a), len(b))) no matter how long the other side is.
func Distance(a, b string) (int, error) {
	if len(a) > MaxInputLen || len(b) > MaxInputLen {
		return 0, ErrInputTooLarge
	}
	// Distance is symmetric; rows run along the shorter string.
	if len(b) > len(a) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		// Each cell depends on the one to its left; this loop stays
		// sequential.
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)], nil
}
