// Package fuzzy ranks names against an abbreviation typed by the user,
// as used by command-line completion.
//
// A candidate matches when every rune of the query appears in it in order,
// ignoring case. Among matches, the ranking favors:
//   - runs of adjacent matched runes
//   - matches at the start of a word
//   - a query that is a prefix of the candidate
//   - short candidates
//
// and penalizes gaps between matched runes.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Match is a ranked candidate.
type Match struct {
	Text  string
	Score int

	// Positions holds the rune indices of the matched runes in Text.
	Positions []int
}

// Score rates text against query. ok is false when text does not contain
// the runes of query in order. An empty query matches everything with
// score zero.
func Score(query, text string) (score int, positions []int, ok bool) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return 0, nil, true
	}
	orig := []rune(text)
	lower := []rune(strings.ToLower(text))
	if len(lower) != len(orig) {
		// Lowering changed the rune count; match on the original.
		lower = orig
	}

	positions = make([]int, 0, len(q))
	for i := 0; i < len(lower) && len(positions) < len(q); i++ {
		if lower[i] == q[len(positions)] {
			positions = append(positions, i)
		}
	}
	if len(positions) != len(q) {
		return 0, nil, false
	}
	return rate(q, orig, lower, positions), positions, true
}

func rate(q, orig, lower []rune, pos []int) int {
	score := 100
	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			score += 20
		}
	}
	for _, p := range pos {
		if wordStart(orig, p) {
			score += 15
		}
	}
	if pos[0] == 0 {
		score += 25
	}
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		score -= 2 * gap
	}
	score -= pos[0]
	if n := len(lower); n < 20 {
		score += 20 - n
	}
	if len(lower) >= len(q) && string(lower[:len(q)]) == string(q) {
		score += 50
	}
	return max(score, 1)
}

// wordStart reports whether the rune at i begins a word: the first rune,
// one after a space or punctuation, or an upper-case rune after a
// lower-case one.
func wordStart(r []rune, i int) bool {
	if i == 0 {
		return true
	}
	if i >= len(r) {
		return false
	}
	prev, cur := r[i-1], r[i]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev) ||
		(unicode.IsLower(prev) && unicode.IsUpper(cur))
}

// Rank returns the candidates matching query, best first. Equal scores
// are ordered by text. Duplicate candidates appear once.
func Rank(query string, candidates []string) []Match {
	seen := make(map[string]bool, len(candidates))
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if score, pos, ok := Score(query, c); ok {
			matches = append(matches, Match{Text: c, Score: score, Positions: pos})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Text < matches[j].Text
	})
	return matches
}

// CommonPrefix returns the longest prefix shared by all matches, or ""
// for none.
func CommonPrefix(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}
	prefix := []rune(matches[0].Text)
	for _, m := range matches[1:] {
		r := []rune(m.Text)
		n := 0
		for n < len(prefix) && n < len(r) && prefix[n] == r[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return string(prefix)
}
