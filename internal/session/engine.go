// Package session selects due units and drives a day's study session:
// evaluate an answer, apply the streak rule, persist, summarize.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/recall-cli/recall/internal/answer"
	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/config"
	"github.com/recall-cli/recall/internal/progress"
	"github.com/recall-cli/recall/internal/store"
)

// ErrNoCurrentUnit is returned by Submit when the plan is exhausted.
var ErrNoCurrentUnit = errors.New("session: no current unit")

// Engine orchestrates selector, evaluator and streak tracker for one
// learner. Events and Stats may be nil (dry runs, tests); Progress is
// required.
type Engine struct {
	Catalog  *card.Catalog
	Progress store.ProgressRepo
	Events   store.EventRepo
	Stats    store.StatsRepo
	Config   config.Config
}

// NewEngine wires an engine from its collaborators.
func NewEngine(catalog *card.Catalog, repo store.ProgressRepo, events store.EventRepo, stats store.StatsRepo, cfg config.Config) *Engine {
	return &Engine{
		Catalog:  catalog,
		Progress: repo,
		Events:   events,
		Stats:    stats,
		Config:   cfg,
	}
}

// Start loads stored progress, selects today's units for theme and
// opens a session. An empty plan is a valid started session whose Done
// is immediately true.
func (e *Engine) Start(ctx context.Context, theme string, today progress.Date) (*State, error) {
	units, err := e.Progress.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	plan := Select(theme, e.Catalog, units, e.Config.UnitsPerTheme)

	st := &State{
		SessionID: uuid.New().String(),
		Theme:     theme,
		Today:     today,
		Plan:      plan,
		units:     units,
		Summary: Summary{
			Theme:      theme,
			Planned:    len(plan),
			AllCorrect: true,
		},
	}

	if e.Events != nil {
		_ = e.Events.AppendSession(ctx, store.SessionEventData{
			SessionID:    st.SessionID,
			Theme:        theme,
			Action:       "start",
			UnitsPlanned: len(plan),
		})
	}

	return st, nil
}

// RevealNextHint reveals the next unseen hint of the current unit, in
// order. ok is false when the unit has no further hints.
func (e *Engine) RevealNextHint(st *State) (string, bool) {
	c, ok := st.Current()
	if !ok {
		return "", false
	}
	for level := st.HintsShown + 1; level <= 2; level++ {
		if h, found := answer.RevealHint(c, level); found {
			st.HintsShown = level
			return h, true
		}
	}
	return "", false
}

// ShownHints returns the hints already revealed for the current unit.
func (e *Engine) ShownHints(st *State) []string {
	c, ok := st.Current()
	if !ok {
		return nil
	}
	var hints []string
	for level := 1; level <= st.HintsShown; level++ {
		if h, found := answer.RevealHint(c, level); found {
			hints = append(hints, h)
		}
	}
	return hints
}

// Submit evaluates the answer for the current unit, applies the streak
// rule and persists the updated unit immediately so a later crash or
// quit loses nothing. The plan position does not advance; the
// presenter shows feedback first and then calls Advance.
func (e *Engine) Submit(ctx context.Context, st *State, submitted string) (AttemptResult, error) {
	c, ok := st.Current()
	if !ok {
		return AttemptResult{}, ErrNoCurrentUnit
	}

	correct, err := answer.Evaluate(c, submitted)
	if err != nil {
		return AttemptResult{}, err
	}

	key := c.Key()
	before := st.units[key]
	after := progress.Apply(before, correct, st.Today, e.Config.ValidStreakDays)
	st.units[key] = after

	if err := e.Progress.Put(ctx, key, after); err != nil {
		return AttemptResult{}, err
	}

	st.Summary.Attempted++
	if correct {
		st.Summary.Correct++
	} else {
		st.Summary.AllCorrect = false
	}
	newlyMastered := after.Mastered && !before.Mastered
	if newlyMastered {
		st.Summary.NewlyMastered++
	}

	if e.Events != nil {
		_ = e.Events.AppendAttempt(ctx, store.AttemptEventData{
			SessionID:   st.SessionID,
			Theme:       key.Theme,
			Question:    key.Question,
			Correct:     correct,
			StreakAfter: after.Streak,
			Mastered:    after.Mastered,
			HintsUsed:   st.HintsShown,
		})
	}

	return AttemptResult{
		Correct:       correct,
		Streak:        after.Streak,
		Mastered:      after.Mastered,
		NewlyMastered: newlyMastered,
		Answer:        c.Answer,
	}, nil
}

// Advance moves to the next planned unit, resetting the hint state.
// Returns false when the plan is exhausted.
func (e *Engine) Advance(st *State) bool {
	st.HintsShown = 0
	if st.Done() {
		return false
	}
	st.Index++
	return !st.Done()
}

// Finish closes the session: appends the end event and folds the
// session into the theme counters. Finishing early (plan not exhausted)
// is fine; processed units are already durable. Finish is idempotent.
func (e *Engine) Finish(ctx context.Context, st *State) (Summary, error) {
	if st.finished {
		return st.Summary, nil
	}
	st.finished = true

	if e.Events != nil {
		_ = e.Events.AppendSession(ctx, store.SessionEventData{
			SessionID:      st.SessionID,
			Theme:          st.Theme,
			Action:         "end",
			UnitsPlanned:   st.Summary.Planned,
			UnitsAttempted: st.Summary.Attempted,
			UnitsCorrect:   st.Summary.Correct,
		})
	}

	if e.Stats != nil && st.Summary.Attempted > 0 {
		perfect := st.Summary.AllCorrect
		if err := e.Stats.RecordSession(ctx, st.Theme, st.Summary.Attempted, st.Summary.Correct, perfect); err != nil {
			return st.Summary, err
		}
	}

	return st.Summary, nil
}

// LoadProgress exposes the stored progress map for screens that render
// theme overviews outside a session.
func (e *Engine) LoadProgress(ctx context.Context) (map[card.Key]progress.UnitProgress, error) {
	return e.Progress.LoadAll(ctx)
}
