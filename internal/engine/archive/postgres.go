package archive

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// PostgresStore keeps the archive in Postgres, shared between instances.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pgx pool and runs schema migrations.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("archive postgres connected", slog.String("addr", config.ConnConfig.Host))
	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := s.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Save inserts e and returns its id.
func (s *PostgresStore) Save(ctx context.Context, e Entry) (int64, error) {
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
	created := time.Now()
	if e.CreatedAt != "" {
		if created, err = time.Parse(time.RFC3339Nano, e.CreatedAt); err != nil {
			return 0, fmt.Errorf("archive: created_at: %w", err)
		}
	}
	var id int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO tube_results (kind, target, items, has_more, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		string(e.Kind), e.Target, items, e.HasMore, created).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("archive: insert: %w", err)
	}
	return id, nil
}

// List returns the newest entries first, optionally filtered by kind and target.
func (s *PostgresStore) List(ctx context.Context, f Filter, limit int) ([]Entry, error) {
	limit = clampLimit(limit)
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, target, items, has_more, created_at FROM tube_results
		 WHERE ($1 = '' OR kind = $1) AND ($2 = '' OR target = $2)
		 ORDER BY id DESC LIMIT $3`, string(f.Kind), f.Target, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: query: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			k       string
			items   []byte
			created time.Time
		)
		if err := rows.Scan(&e.ID, &k, &e.Target, &items, &e.HasMore, &created); err != nil {
			return nil, fmt.Errorf("archive: scan: %w", err)
		}
		e.Kind = Kind(k)
		e.CreatedAt = created.UTC().Format(time.RFC3339Nano)
		if err := json.Unmarshal(items, &e.Items); err != nil {
			return nil, fmt.Errorf("archive: decode items of %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
