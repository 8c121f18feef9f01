package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// KVRepo is the small key-value store widgets persist scalars in.
type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo { return &KVRepo{db: db} }

// stamp is the updated_at value: UTC, whole seconds, like sqlite's CURRENT_TIMESTAMP.
func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO kv(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, key, value, stamp())
	return err
}

// Get returns the value and whether the key exists.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// GetInt reads an integer value. A stored value that does not parse is treated as absent.
func (r *KVRepo) GetInt(ctx context.Context, key string) (int, bool, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (r *KVRepo) SetInt(ctx context.Context, key string, n int) error {
	return r.Set(ctx, key, strconv.Itoa(n))
}

// SetIntIfLower stores n unless the key already holds a positive integer <= n.
// Zero, negative and non-numeric values count as unset. It
// reports whether the stored value changed. The comparison happens in a single
// statement, so concurrent writers cannot raise a stored minimum.
func (r *KVRepo) SetIntIfLower(ctx context.Context, key string, n int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO kv(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
	WHERE kv.value GLOB '*[^0-9-]*' OR kv.value = ''
		OR CAST(kv.value AS INTEGER) <= 0
		OR CAST(kv.value AS INTEGER) > CAST(excluded.value AS INTEGER);
	`, key, strconv.Itoa(n), stamp())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (r *KVRepo) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
