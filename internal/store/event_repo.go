package store

import (
	"context"
	"database/sql"
	"time"
)

// eventRepo is the SQLite implementation of EventRepo.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events
		 (session_id, theme, action, units_planned, units_attempted, units_correct, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Theme, data.Action,
		data.UnitsPlanned, data.UnitsAttempted, data.UnitsCorrect,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &PersistenceError{Op: "append session event", Err: err}
	}
	return nil
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempt_events
		 (session_id, theme, question, correct, streak_after, mastered, hints_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Theme, data.Question,
		data.Correct, data.StreakAfter, data.Mastered, data.HintsUsed,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return &PersistenceError{Op: "append attempt event", Err: err}
	}
	return nil
}

// statsRepo is the SQLite implementation of StatsRepo.
type statsRepo struct {
	db *sql.DB
}

func (r *statsRepo) ThemeStats(ctx context.Context, theme string) (ThemeStats, error) {
	var s ThemeStats
	err := r.db.QueryRowContext(ctx,
		`SELECT flames, attempts, correct FROM theme_stats WHERE theme = ?`, theme).
		Scan(&s.Flames, &s.Attempts, &s.Correct)
	if err == sql.ErrNoRows {
		return ThemeStats{}, nil
	}
	if err != nil {
		return ThemeStats{}, &PersistenceError{Op: "load theme stats", Err: err}
	}
	return s, nil
}

func (r *statsRepo) AllThemeStats(ctx context.Context) (map[string]ThemeStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT theme, flames, attempts, correct FROM theme_stats`)
	if err != nil {
		return nil, &PersistenceError{Op: "load theme stats", Err: err}
	}
	defer rows.Close()

	stats := make(map[string]ThemeStats)
	for rows.Next() {
		var (
			theme string
			s     ThemeStats
		)
		if err := rows.Scan(&theme, &s.Flames, &s.Attempts, &s.Correct); err != nil {
			return nil, &PersistenceError{Op: "scan theme stats", Err: err}
		}
		stats[theme] = s
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load theme stats", Err: err}
	}
	return stats, nil
}

func (r *statsRepo) RecordSession(ctx context.Context, theme string, attempts, correct int, perfect bool) error {
	// flames: increment on a perfect session, reset to zero otherwise.
	flameDelta := 0
	if perfect {
		flameDelta = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO theme_stats (theme, flames, attempts, correct)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (theme) DO UPDATE SET
			flames = CASE WHEN ? THEN theme_stats.flames + 1 ELSE 0 END,
			attempts = theme_stats.attempts + excluded.attempts,
			correct = theme_stats.correct + excluded.correct`,
		theme, flameDelta, attempts, correct, perfect)
	if err != nil {
		return &PersistenceError{Op: "record session stats", Err: err}
	}
	return nil
}
