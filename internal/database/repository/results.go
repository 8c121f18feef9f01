package repository

import (
	"context"
	"database/sql"
)

// ResultRepo handles finished game rows.
type ResultRepo struct {
	db *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

func (r *ResultRepo) Add(ctx context.Context, g GameResult) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO game_results(id, session_id, widget, target, attempts, elapsed_seconds, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.SessionID, g.Widget, g.Target, g.Attempts, g.ElapsedSeconds, g.FinishedAt)
	return err
}

// Recent lists the newest results for a widget, newest first.
func (r *ResultRepo) Recent(ctx context.Context, widget string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, widget, target, attempts, elapsed_seconds, finished_at
	FROM game_results WHERE widget = ?
	ORDER BY finished_at DESC, rowid DESC LIMIT ?`, widget, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameResult
	for rows.Next() {
		var g GameResult
		if err := rows.Scan(&g.ID, &g.SessionID, &g.Widget, &g.Target, &g.Attempts, &g.ElapsedSeconds, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *ResultRepo) Count(ctx context.Context, widget string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_results WHERE widget = ?`, widget).Scan(&n)
	return n, err
}
