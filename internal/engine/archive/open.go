package archive

import (
	"context"
	"log/slog"
)

// Open picks the archive backend: Postgres when databaseURL is set and
// reachable, the SQLite file at sqlitePath otherwise.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	if databaseURL != "" {
		pg, err := ConnectPostgres(ctx, databaseURL)
		if err == nil {
			return pg, nil
		}
		slog.Warn("archive: postgres unavailable, falling back to sqlite", slog.Any("error", err))
	}
	return OpenSQLite(sqlitePath)
}
