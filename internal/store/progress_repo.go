package store

import (
	"context"
	"database/sql"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/progress"
)

// progressRepo is the SQLite implementation of ProgressRepo.
type progressRepo struct {
	db *sql.DB
}

const upsertUnitSQL = `
INSERT INTO unit_progress (theme, question, streak, last_attempt, mastered, correct, wrong)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (theme, question) DO UPDATE SET
	streak = excluded.streak,
	last_attempt = excluded.last_attempt,
	mastered = excluded.mastered,
	correct = excluded.correct,
	wrong = excluded.wrong`

func (r *progressRepo) LoadAll(ctx context.Context) (map[card.Key]progress.UnitProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT theme, question, streak, last_attempt, mastered, correct, wrong
		 FROM unit_progress`)
	if err != nil {
		return nil, &PersistenceError{Op: "load progress", Err: err}
	}
	defer rows.Close()

	units := make(map[card.Key]progress.UnitProgress)
	for rows.Next() {
		var (
			k           card.Key
			p           progress.UnitProgress
			lastAttempt string
		)
		if err := rows.Scan(&k.Theme, &k.Question, &p.Streak, &lastAttempt, &p.Mastered, &p.Correct, &p.Wrong); err != nil {
			return nil, &PersistenceError{Op: "scan progress row", Err: err}
		}
		// A bad stored date surfaces as a TemporalError, not fabricated state.
		d, err := progress.ParseDate(lastAttempt)
		if err != nil {
			return nil, err
		}
		p.LastAttempt = d
		units[k] = p
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load progress", Err: err}
	}
	return units, nil
}

func (r *progressRepo) Put(ctx context.Context, key card.Key, p progress.UnitProgress) error {
	_, err := r.db.ExecContext(ctx, upsertUnitSQL,
		key.Theme, key.Question, p.Streak, p.LastAttempt.String(), p.Mastered, p.Correct, p.Wrong)
	if err != nil {
		return &PersistenceError{Op: "save unit", Err: err}
	}
	return nil
}

func (r *progressRepo) SaveAll(ctx context.Context, units map[card.Key]progress.UnitProgress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin save", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertUnitSQL)
	if err != nil {
		return &PersistenceError{Op: "prepare save", Err: err}
	}
	defer stmt.Close()

	for k, p := range units {
		if _, err := stmt.ExecContext(ctx,
			k.Theme, k.Question, p.Streak, p.LastAttempt.String(), p.Mastered, p.Correct, p.Wrong); err != nil {
			return &PersistenceError{Op: "save unit", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit save", Err: err}
	}
	return nil
}

// Reset also clears the theme counters and event log rows, so flames
// and history do not survive a wipe.
func (r *progressRepo) Reset(ctx context.Context, theme string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin reset", Err: err}
	}
	defer tx.Rollback()

	tables := []string{"unit_progress", "theme_stats", "session_events", "attempt_events"}
	for _, table := range tables {
		if theme == "" {
			_, err = tx.ExecContext(ctx, `DELETE FROM `+table)
		} else {
			_, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE theme = ?`, theme)
		}
		if err != nil {
			return &PersistenceError{Op: "reset progress", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit reset", Err: err}
	}
	return nil
}
