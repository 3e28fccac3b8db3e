package store

import (
	"context"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

// ProgressRepo manages persisted per-unit mastery state. Load on an
// empty or missing store yields an empty map; save/load round-trips
// state exactly.
type ProgressRepo interface {
	// LoadAll returns every stored unit's progress.
	LoadAll(ctx context.Context) (map[card.Key]progress.UnitProgress, error)

	// Put upserts a single unit's progress. Called after every attempt
	// so a crash never loses more than the in-flight unit.
	Put(ctx context.Context, key card.Key, p progress.UnitProgress) error

	// SaveAll upserts the full mapping in one transaction.
	SaveAll(ctx context.Context, units map[card.Key]progress.UnitProgress) error

	// Reset deletes progress for a theme, or everything when theme is "".
	Reset(ctx context.Context, theme string) error
}

// SessionEventData records a session boundary in the event log.
type SessionEventData struct {
	SessionID      string
	Theme          string
	Action         string // "start" or "end"
	UnitsPlanned   int
	UnitsAttempted int
	UnitsCorrect   int
}

// AttemptEventData records one evaluated answer.
type AttemptEventData struct {
	SessionID   string
	Theme       string
	Question    string
	Correct     bool
	StreakAfter int
	Mastered    bool
	HintsUsed   int
}

// EventRepo provides append access to the session/attempt event log.
type EventRepo interface {
	AppendSession(ctx context.Context, data SessionEventData) error
	AppendAttempt(ctx context.Context, data AttemptEventData) error
}

// ThemeStats are the per-theme counters the trainer keeps: flames is the
// run of consecutive fully-correct sessions, attempts/correct are
// lifetime answer counts.
type ThemeStats struct {
	Flames   int
	Attempts int
	Correct  int
}

// Accuracy returns the lifetime correct-answer ratio, 0 when unplayed.
func (s ThemeStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// StatsRepo manages the per-theme counters.
type StatsRepo interface {
	// ThemeStats returns the counters for one theme (zero value if unplayed).
	ThemeStats(ctx context.Context, theme string) (ThemeStats, error)

	// AllThemeStats returns counters for every theme that has been played.
	AllThemeStats(ctx context.Context) (map[string]ThemeStats, error)

	// RecordSession folds one finished session into the counters:
	// attempts/correct accumulate, flames increments on a perfect
	// session and resets otherwise.
	RecordSession(ctx context.Context, theme string, attempts, correct int, perfect bool) error
}
