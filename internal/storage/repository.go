package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// ActionKind names a user action recorded in the journal.
type ActionKind string

const (
	ActionMarkRead       ActionKind = "mark-read"
	ActionAddBookmark    ActionKind = "add-bookmark"
	ActionRemoveBookmark ActionKind = "remove-bookmark"
	ActionAddFilter      ActionKind = "add-filter"
	ActionEditFilter     ActionKind = "edit-filter"
	ActionDeleteFilter   ActionKind = "delete-filter"
)

// Action is one journal row: what was attempted and how it ended.
type Action struct {
	ID      int64
	Kind    ActionKind
	PostIDs []int64
	Detail  string
	Err     string
	At      time.Time
}

func (a Action) Succeeded() bool {
	return a.Err == ""
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS actions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  kind TEXT NOT NULL,
  post_ids TEXT NOT NULL,
  detail TEXT NOT NULL DEFAULT '',
  error TEXT NOT NULL DEFAULT '',
  at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable verifies the database accepts writes.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO preferences (key, value) VALUES ('__write_check', '1')`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

func (r *Repository) RecordAction(ctx context.Context, a Action) error {
	ids := a.PostIDs
	if ids == nil {
		ids = []int64{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode post ids: %w", err)
	}
	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO actions (kind, post_ids, detail, error, at)
VALUES (?, ?, ?, ?, ?)
`, string(a.Kind), string(encoded), a.Detail, a.Err, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save action %s: %w", a.Kind, err)
	}
	return nil
}

// ListActions returns the most recent actions first.
func (r *Repository) ListActions(ctx context.Context, limit int) ([]Action, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, kind, post_ids, detail, error, at
FROM actions
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	actions := make([]Action, 0, limit)
	for rows.Next() {
		var a Action
		var kind, postIDs, at string
		if err := rows.Scan(&a.ID, &kind, &postIDs, &a.Detail, &a.Err, &at); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.Kind = ActionKind(kind)
		if err := json.Unmarshal([]byte(postIDs), &a.PostIDs); err != nil {
			return nil, fmt.Errorf("decode post ids of action %d: %w", a.ID, err)
		}
		a.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse action time %q: %w", at, err)
		}
		actions = append(actions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return actions, nil
}

func (r *Repository) SaveBoolPreference(ctx context.Context, key string, value bool) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, key, strconv.FormatBool(value))
	if err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

// LoadBoolPreference returns fallback when the key was never saved.
func (r *Repository) LoadBoolPreference(ctx context.Context, key string, fallback bool) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("load preference %s: %w", key, err)
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("parse preference %s: %w", key, err)
	}
	return v, nil
}
