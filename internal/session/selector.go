package session

import (
	"sort"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

// Select picks the units due for one session of a theme, capped at
// limit. Mastered units are excluded. Ordering is deterministic:
// never-attempted units first in catalog order, then attempted units
// with the stalest last-attempt date first, catalog order on ties. An
// empty result means the theme is done (or empty), a normal terminal
// outcome, not an error.
func Select(theme string, catalog *card.Catalog, units map[card.Key]progress.UnitProgress, limit int) []card.Card {
	if limit < 1 {
		return nil
	}

	type candidate struct {
		card card.Card
		prog progress.UnitProgress
		pos  int // catalog position, tie-breaker
	}

	var fresh, seen []candidate
	for i, c := range catalog.ByTheme(theme) {
		p, ok := units[c.Key()]
		if ok && p.Mastered {
			continue
		}
		cand := candidate{card: c, prog: p, pos: i}
		if !ok || !p.Attempted() {
			fresh = append(fresh, cand)
		} else {
			seen = append(seen, cand)
		}
	}

	// Stalest review first; catalog order breaks ties and orders units
	// that share an attempt day.
	sort.SliceStable(seen, func(i, j int) bool {
		di, dj := seen[i].prog.LastAttempt, seen[j].prog.LastAttempt
		if di.Equal(dj) {
			return seen[i].pos < seen[j].pos
		}
		return di.Before(dj)
	})

	ordered := append(fresh, seen...)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	plan := make([]card.Card, len(ordered))
	for i, c := range ordered {
		plan[i] = c.card
	}
	return plan
}

// MasteredCount returns how many of a theme's cards are mastered.
func MasteredCount(theme string, catalog *card.Catalog, units map[card.Key]progress.UnitProgress) int {
	n := 0
	for _, c := range catalog.ByTheme(theme) {
		if p, ok := units[c.Key()]; ok && p.Mastered {
			n++
		}
	}
	return n
}
