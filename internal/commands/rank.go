package commands

import (
	"sort"
	"strings"
)

// Scores. A query part that matches neither as prefix, substring nor
// subsequence costs partMiss whatever its length.
const (
	scoreEmpty      = 1
	scorePrefix     = 140
	scoreSubstring  = 95
	partPrefix      = 30
	partContains    = 16
	partSubsequence = 8
	partMiss        = -12
)

// Scope prefixes.
const (
	scopeHelp      = "?"
	scopeActions   = ">"
	scopeCharacter = "@"
	scopeChapter   = "#"
)

// SearchText is the lower-cased text an item is matched against.
func SearchText(item Item) string {
	parts := append([]string{item.Title, item.Subtitle}, item.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Score rates item against an already scoped query. Zero or less means no
// match.
func Score(item Item, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return scoreEmpty
	}
	hay := SearchText(item)
	if strings.HasPrefix(hay, q) {
		return scorePrefix
	}
	if strings.Contains(hay, q) {
		return scoreSubstring
	}

	score := 0
	for _, part := range strings.Fields(q) {
		switch {
		case strings.HasPrefix(hay, part):
			score += partPrefix
		case strings.Contains(hay, part):
			score += partContains
		case subsequence(hay, part) >= max(2, len([]rune(part))*3/5):
			score += partSubsequence
		default:
			score += partMiss
		}
	}
	return score
}

// subsequence returns how many leading runes of part occur in hay in order.
func subsequence(hay, part string) int {
	p := []rune(part)
	i := 0
	for _, ch := range hay {
		if i >= len(p) {
			break
		}
		if ch == p[i] {
			i++
		}
	}
	return i
}

// Scope narrows items by a leading scope prefix and returns the remaining
// query. A query of exactly "?" selects the Help group.
func Scope(items []Item, query string) ([]Item, string) {
	q := strings.TrimSpace(query)
	if q == scopeHelp {
		return filter(items, func(it Item) bool { return it.Group == GroupHelp }), ""
	}

	var keep func(Item) bool
	switch {
	case strings.HasPrefix(q, scopeActions):
		keep = func(it Item) bool { return it.Group == GroupActions }
	case strings.HasPrefix(q, scopeCharacter):
		keep = func(it Item) bool { return it.Kind() == KindCharacter }
	case strings.HasPrefix(q, scopeChapter):
		keep = func(it Item) bool { return it.Kind() == KindChapter }
	default:
		return items, q
	}
	return filter(items, keep), strings.TrimSpace(q[1:])
}

// Rank returns the items matching query, best first. Items with equal
// scores keep their catalog order.
func Rank(items []Item, query string) []Item {
	scoped, q := Scope(items, query)

	type scored struct {
		item  Item
		score int
	}
	hits := make([]scored, 0, len(scoped))
	for _, it := range scoped {
		if s := Score(it, q); s > 0 {
			hits = append(hits, scored{it, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]Item, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

func filter(items []Item, keep func(Item) bool) []Item {
	out := []Item{}
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
