package similarity

// TokenSimilarity returns the Jaccard index of the two strings' token sets:
// intersection size over union size, with duplicate occurrences of a token
// collapsed to a single set member. Tokens are delimited by exactly space,
// tab, newline, and carriage return; no case folding or stemming is applied.
// When both inputs tokenize to nothing the union is empty and the result
// is 0.
func TokenSimilarity(a, b string) float64 {
	score, _ := jaccard(a, b, 0)
	return score
}

// BoundedTokenSimilarity is TokenSimilarity with an explicit cap on the
// number of distinct tokens considered per side, for callers that must guard
// against adversarial inputs. The second return reports whether either side
// had tokens dropped; truncation is never silent.
func BoundedTokenSimilarity(a, b string, maxTokens int) (float64, bool) {
	return jaccard(a, b, maxTokens)
}

func jaccard(a, b string, limit int) (float64, bool) {
	setA, truncA := tokenSet(a, limit)
	setB, truncB := tokenSet(b, limit)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0, truncA || truncB
	}
	return float64(intersection) / float64(union), truncA || truncB
}

func isTokenDelim(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenSet scans s once, building the distinct-token set without
// materializing an intermediate slice. With limit > 0 the set stops growing
// at limit members and any further unseen token marks truncation.
func tokenSet(s string, limit int) (map[string]struct{}, bool) {
	set := make(map[string]struct{})
	truncated := false
	for i := 0; i < len(s); {
		for i < len(s) && isTokenDelim(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isTokenDelim(s[i]) {
			i++
		}
		if start == i {
			break
		}
		tok := s[start:i]
		if limit > 0 && len(set) >= limit {
			if _, ok := set[tok]; !ok {
				truncated = true
			}
			continue
		}
		set[tok] = struct{}{}
	}
	return set, truncated
}
