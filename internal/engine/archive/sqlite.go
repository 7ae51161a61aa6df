package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the default archive, a single file under the user's home.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultSQLitePath returns ~/.go_tube/archive.db.
func DefaultSQLitePath() string {
	return filepath.Join(os.Getenv("HOME"), ".go_tube", "archive.db")
}

// OpenSQLite opens (or creates) the archive database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("archive: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS results (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		target     TEXT NOT NULL,
		items      TEXT NOT NULL,
		has_more   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS results_kind_created ON results (kind, created_at)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS results_target ON results (target)`)
	return err
}

// Save inserts e and returns its id. CreatedAt defaults to now.
func (s *SQLiteStore) Save(ctx context.Context, e Entry) (int64, error) {
	if err := validateEntry(e); err != nil {
		return 0, err
	}
	if e.Items == nil {
		e.Items = []youtube.SearchItem{}
	}
	items, err := json.Marshal(e.Items)
	if err != nil {
		return 0, fmt.Errorf("archive: encode items: %w", err)
	}
	if e.CreatedAt == "" {
		e.CreatedAt = now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (kind, target, items, has_more, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(e.Kind), e.Target, string(items), e.HasMore, e.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("archive: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// List returns the newest entries first, optionally filtered by kind and target.
func (s *SQLiteStore) List(ctx context.Context, f Filter, limit int) ([]Entry, error) {
	limit = clampLimit(limit)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, target, items, has_more, created_at FROM results
		 WHERE (?1 = '' OR kind = ?1) AND (?2 = '' OR target = ?2)
		 ORDER BY id DESC LIMIT ?3`, string(f.Kind), f.Target, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e     Entry
			k     string
			items string
		)
		if err := rows.Scan(&e.ID, &k, &e.Target, &items, &e.HasMore, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		e.Kind = Kind(k)
		if err := json.Unmarshal([]byte(items), &e.Items); err != nil {
			return nil, fmt.Errorf("archive: decode items of %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
