package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	repo := st.ProgressRepo()

	// A fresh store loads empty.
	units, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, units)

	key := card.Key{Theme: "geo", Question: "Capital of France?"}
	p := progress.UnitProgress{
		Streak:      2,
		LastAttempt: progress.NewDate(2026, time.March, 5),
		Mastered:    false,
		Correct:     4,
		Wrong:       1,
	}
	require.NoError(t, repo.Put(ctx, key, p))

	units, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, p, units[key])

	// Upsert overwrites in place.
	p.Streak = 3
	p.Mastered = true
	require.NoError(t, repo.Put(ctx, key, p))
	units, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, p, units[key])
}

func TestSaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	repo := st.ProgressRepo()

	in := map[card.Key]progress.UnitProgress{
		{Theme: "geo", Question: "q1"}:  {Streak: 1, LastAttempt: progress.NewDate(2026, time.March, 1), Correct: 1},
		{Theme: "math", Question: "q2"}: {Streak: 3, LastAttempt: progress.NewDate(2026, time.March, 3), Mastered: true, Correct: 3},
		{Theme: "math", Question: "q3"}: {},
	}
	require.NoError(t, repo.SaveAll(ctx, in))

	out, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResetScopes(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	repo := st.ProgressRepo()
	stats := st.StatsRepo()

	require.NoError(t, repo.Put(ctx, card.Key{Theme: "geo", Question: "q1"}, progress.UnitProgress{Streak: 1}))
	require.NoError(t, repo.Put(ctx, card.Key{Theme: "math", Question: "q2"}, progress.UnitProgress{Streak: 2}))
	require.NoError(t, stats.RecordSession(ctx, "geo", 3, 3, true))
	require.NoError(t, stats.RecordSession(ctx, "math", 3, 2, false))

	// Theme-scoped reset leaves the other theme alone, flames included.
	require.NoError(t, repo.Reset(ctx, "geo"))
	units, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Contains(t, units, card.Key{Theme: "math", Question: "q2"})

	ts, err := stats.ThemeStats(ctx, "geo")
	require.NoError(t, err)
	assert.Zero(t, ts)
	ts, err = stats.ThemeStats(ctx, "math")
	require.NoError(t, err)
	assert.Equal(t, 3, ts.Attempts)

	// Full reset wipes everything.
	require.NoError(t, repo.Reset(ctx, ""))
	units, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, units)
	all, err := stats.AllThemeStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLoadAllSurfacesBadStoredDate(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.DB().ExecContext(ctx,
		`INSERT INTO unit_progress (theme, question, streak, last_attempt, mastered, correct, wrong)
		 VALUES ('geo', 'q1', 1, 'garbage', 0, 1, 0)`)
	require.NoError(t, err)

	_, err = st.ProgressRepo().LoadAll(ctx)
	var terr *progress.TemporalError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "garbage", terr.Value)
}

func TestThemeStatsFlames(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	stats := st.StatsRepo()

	// Unplayed theme reads as zero value, no error.
	ts, err := stats.ThemeStats(ctx, "geo")
	require.NoError(t, err)
	assert.Zero(t, ts)

	require.NoError(t, stats.RecordSession(ctx, "geo", 5, 5, true))
	require.NoError(t, stats.RecordSession(ctx, "geo", 5, 5, true))
	ts, err = stats.ThemeStats(ctx, "geo")
	require.NoError(t, err)
	assert.Equal(t, 2, ts.Flames)
	assert.Equal(t, 10, ts.Attempts)
	assert.Equal(t, 10, ts.Correct)

	// An imperfect session resets the flame run but keeps the counters.
	require.NoError(t, stats.RecordSession(ctx, "geo", 5, 4, false))
	ts, err = stats.ThemeStats(ctx, "geo")
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Flames)
	assert.Equal(t, 15, ts.Attempts)
	assert.Equal(t, 14, ts.Correct)
	assert.InDelta(t, 14.0/15.0, ts.Accuracy(), 1e-9)
}

func TestEventLogAppend(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	events := st.EventRepo()

	require.NoError(t, events.AppendSession(ctx, SessionEventData{
		SessionID: "s1", Theme: "geo", Action: "start", UnitsPlanned: 3,
	}))
	require.NoError(t, events.AppendAttempt(ctx, AttemptEventData{
		SessionID: "s1", Theme: "geo", Question: "q1", Correct: true, StreakAfter: 1, HintsUsed: 2,
	}))
	require.NoError(t, events.AppendSession(ctx, SessionEventData{
		SessionID: "s1", Theme: "geo", Action: "end", UnitsPlanned: 3, UnitsAttempted: 1, UnitsCorrect: 1,
	}))

	var sessions, attempts int
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM session_events`).Scan(&sessions))
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM attempt_events`).Scan(&attempts))
	assert.Equal(t, 2, sessions)
	assert.Equal(t, 1, attempts)
}

func TestOpenIsReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.ProgressRepo().Put(context.Background(),
		card.Key{Theme: "geo", Question: "q1"}, progress.UnitProgress{Streak: 1}))
	require.NoError(t, st.Close())

	// Reopening an existing database must not disturb its contents.
	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	units, err := st.ProgressRepo().LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	t.Setenv("RECALL_DB", filepath.Join(t.TempDir(), "custom", "recall.db"))
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Contains(t, got, "custom")
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &PersistenceError{Op: "save unit", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "save unit")
}
