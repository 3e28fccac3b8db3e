package card

import "fmt"

// Card is a single question/answer unit, validated at load time and
// immutable afterwards. Identity is the (Theme, Question) pair.
type Card struct {
	Theme    string
	Question string

	// Answer is the canonical expected answer; Alternatives are extra
	// accepted spellings from decks that list several answers. Matching
	// is always exact after normalization.
	Answer       string
	Alternatives []string

	// Hint1 and Hint2 are progressive hints, either may be empty.
	Hint1 string
	Hint2 string

	// Context and Link are shown after evaluation and never affect scoring.
	Context string
	Link    string
}

// Key identifies a card within a catalog.
type Key struct {
	Theme    string
	Question string
}

// Key returns the card's identity key.
func (c Card) Key() Key {
	return Key{Theme: c.Theme, Question: c.Question}
}

// Hint returns the hint at the given level (1 or 2), or "" and false if
// there is no hint at that level.
func (c Card) Hint(level int) (string, bool) {
	switch level {
	case 1:
		if c.Hint1 != "" {
			return c.Hint1, true
		}
	case 2:
		if c.Hint2 != "" {
			return c.Hint2, true
		}
	}
	return "", false
}

// HintCount returns the number of hints the card carries.
func (c Card) HintCount() int {
	n := 0
	if c.Hint1 != "" {
		n++
	}
	if c.Hint2 != "" {
		n++
	}
	return n
}

// ValidationError indicates a card record that violates the deck contract
// (empty question/answer, duplicate identity, malformed deck file).
type ValidationError struct {
	File   string // deck file, empty when the card did not come from a file
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("invalid card in %s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("invalid card: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the fields the engine relies on. Loaded decks are
// validated up front; this also guards cards handed in by other callers.
func (c Card) Validate() error {
	if c.Question == "" {
		return &ValidationError{Reason: "empty question"}
	}
	if c.Answer == "" {
		return &ValidationError{Reason: fmt.Sprintf("card %q has empty answer", c.Question)}
	}
	return nil
}
