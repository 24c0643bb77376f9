// Package fuzzy scores candidates against a query by ordered
// subsequence match. Contiguous matches beat scattered ones, word
// boundary hits beat mid-word hits, earlier and shorter candidates win
// ties.
package fuzzy

import (
	"strings"
	"unicode"
)

// Scoring weights.
const (
	baseScore        = 100
	consecutiveBonus = 20
	boundaryBonus    = 15
	prefixBonus      = 25
	exactPrefixBonus = 50
	gapPenalty       = 2
	leadingPenalty   = 1
	lengthThreshold  = 20
)

// Match scores candidate against query. ok is false when the query is
// not an ordered subsequence of the candidate. Matching is
// case-insensitive; indices are rune positions in the candidate.
func Match(query, candidate string) (score int, indices []int, ok bool) {
	if query == "" {
		return 0, nil, true
	}
	if candidate == "" {
		return 0, nil, false
	}

	queryRunes := []rune(strings.ToLower(query))
	original := []rune(candidate)
	lowered := []rune(strings.ToLower(candidate))

	indices = make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(lowered) && qi < len(queryRunes); i++ {
		if lowered[i] == queryRunes[qi] {
			indices = append(indices, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil, false
	}

	return scoreMatch(queryRunes, original, lowered, indices), indices, true
}

func scoreMatch(query, original, lowered []rune, matches []int) int {
	score := baseScore

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += consecutiveBonus
		}
	}

	for _, idx := range matches {
		if isBoundary(original, idx) {
			score += boundaryBonus
		}
	}

	if matches[0] == 0 {
		score += prefixBonus
	} else {
		score -= matches[0] * leadingPenalty
	}

	if len(matches) > 1 {
		gap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		score -= gap * gapPenalty
	}

	// Shorter candidates always outrank longer ones at equal match
	// quality; this may push the score negative for very long texts.
	score += lengthThreshold - len(lowered)

	if len(lowered) >= len(query) {
		exact := true
		for i, qr := range query {
			if lowered[i] != qr {
				exact = false
				break
			}
		}
		if exact {
			score += exactPrefixBonus
		}
	}

	return score
}

// isBoundary reports whether idx starts a word: string start, after a
// separator, or a camelCase hump.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || prev == '/' || prev == '\\' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
