package session

import (
	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

// State is the runtime state of one session over one theme. Units are
// processed strictly in plan order; each unit is evaluated, persisted
// and summarized before the next is surfaced.
type State struct {
	// SessionID identifies this session in the event log.
	SessionID string

	// Theme is the theme under study.
	Theme string

	// Today is the session's calendar day, fixed at start.
	Today progress.Date

	// Plan is the ordered unit selection for today.
	Plan []card.Card

	// Index is the position of the current unit within Plan.
	Index int

	// HintsShown counts hints revealed for the current unit (0-2).
	HintsShown int

	// Summary accumulates per-session statistics.
	Summary Summary

	// units is the loaded progress snapshot, mutated as attempts land.
	units map[card.Key]progress.UnitProgress

	finished bool
}

// Current returns the unit being presented, or false when the plan is
// exhausted.
func (s *State) Current() (card.Card, bool) {
	if s.Index < 0 || s.Index >= len(s.Plan) {
		return card.Card{}, false
	}
	return s.Plan[s.Index], true
}

// Done reports whether every planned unit has been processed.
func (s *State) Done() bool {
	return s.Index >= len(s.Plan)
}

// Progress returns the current known progress for a unit key.
func (s *State) Progress(k card.Key) progress.UnitProgress {
	return s.units[k]
}

// Remaining returns how many planned units have not been presented yet,
// including the current one.
func (s *State) Remaining() int {
	if s.Done() {
		return 0
	}
	return len(s.Plan) - s.Index
}

// AttemptResult is what the presenter renders after an evaluated answer.
type AttemptResult struct {
	Correct       bool
	Streak        int
	Mastered      bool
	NewlyMastered bool

	// Answer is the canonical expected answer, for the wrong-answer
	// feedback line.
	Answer string
}

// Summary is the per-session statistics block.
type Summary struct {
	Theme         string
	Planned       int
	Attempted     int
	Correct       int
	NewlyMastered int

	// AllCorrect feeds the theme flame counter: true only when every
	// attempted unit was answered correctly.
	AllCorrect bool
}

// Accuracy returns the session's correct-answer ratio.
func (s Summary) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}
