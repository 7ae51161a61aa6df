// Package archive keeps a history of tool results: which searches, videos
// and playlists were looked up, and what came back.
package archive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// Kind names the tool that produced an entry.
type Kind string

const (
	KindSearch   Kind = "search"
	KindNextPage Kind = "next_page"
	KindVideo    Kind = "video"
	KindPlaylist Kind = "playlist"
)

// Entry is one archived result.
type Entry struct {
	ID        int64                `json:"id"`
	Kind      Kind                 `json:"kind"`
	Target    string               `json:"target"` // query, video id or playlist id
	Items     []youtube.SearchItem `json:"items"`
	HasMore   bool                 `json:"has_more"`
	CreatedAt string               `json:"created_at"` // RFC 3339, UTC
}

// Filter narrows List. Zero fields match everything; Target matches exactly.
type Filter struct {
	Kind   Kind
	Target string
}

// Store persists entries. Implementations are safe for concurrent use.
type Store interface {
	Save(ctx context.Context, e Entry) (int64, error)
	List(ctx context.Context, f Filter, limit int) ([]Entry, error)
	Close() error
}

// ParseKind validates a user-supplied kind. Empty means all kinds.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "", KindSearch, KindNextPage, KindVideo, KindPlaylist:
		return k, nil
	}
	return "", fmt.Errorf("archive: invalid kind %q (valid: search, next_page, video, playlist)", s)
}

func validateEntry(e Entry) error {
	if e.Kind == "" {
		return errors.New("archive: entry kind is required")
	}
	if _, err := ParseKind(string(e.Kind)); err != nil {
		return err
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }
