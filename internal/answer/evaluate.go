// Package answer compares submitted answers against cards and exposes
// the hint-reveal protocol. It is pure: scoring lives in progress.Apply.
package answer

import (
	"strings"

	"github.com/recall-cli/recall/internal/card"
)

// Normalize applies the comparison normalization: trim surrounding
// whitespace and casefold. Nothing else; exact match is the contract.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Evaluate reports whether submitted matches the card's canonical answer
// or one of its alternatives. It fails fast on a card that slipped past
// deck validation with an empty question or answer.
func Evaluate(c card.Card, submitted string) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	got := Normalize(submitted)
	if got == Normalize(c.Answer) {
		return true, nil
	}
	for _, alt := range c.Alternatives {
		if got == Normalize(alt) {
			return true, nil
		}
	}
	return false, nil
}

// RevealHint returns the card's hint at level (1 or 2). Levels are
// independently revealable; ok is false when no hint exists at that level.
func RevealHint(c card.Card, level int) (hint string, ok bool) {
	return c.Hint(level)
}
