package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	items := []youtube.SearchItem{
		{ID: "v1", Type: youtube.TypeVideo, Title: "One", Thumbnail: []youtube.Thumbnail{{URL: "a.jpg", Width: 1, Height: 2}}},
		{ID: "UC1", Type: youtube.TypeChannel, Title: "Chan"},
	}
	id1, err := s.Save(ctx, Entry{Kind: KindSearch, Target: "golang", Items: items, HasMore: true})
	require.NoError(t, err)
	id2, err := s.Save(ctx, Entry{Kind: KindVideo, Target: "v1", Items: []youtube.SearchItem{}})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	all, err := s.List(ctx, Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id2, all[0].ID, "newest first")
	assert.Equal(t, KindSearch, all[1].Kind)
	assert.Equal(t, items, all[1].Items)
	assert.True(t, all[1].HasMore)
	created, err := time.Parse(time.RFC3339Nano, all[1].CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)

	videos, err := s.List(ctx, Filter{Kind: KindVideo}, 10)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "v1", videos[0].Target)
	assert.NotNil(t, videos[0].Items)
}

func TestSQLiteListLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for range 5 {
		_, err := s.Save(ctx, Entry{Kind: KindPlaylist, Target: "PL"})
		require.NoError(t, err)
	}
	got, err := s.List(ctx, Filter{Kind: KindPlaylist}, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	empty, err := s.List(ctx, Filter{Kind: KindNextPage}, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLiteListByTarget(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, e := range []Entry{
		{Kind: KindSearch, Target: "golang"},
		{Kind: KindSearch, Target: "rust"},
		{Kind: KindNextPage, Target: "golang"},
		{Kind: KindSearch, Target: "golang"},
	} {
		_, err := s.Save(ctx, e)
		require.NoError(t, err)
	}

	got, err := s.List(ctx, Filter{Target: "golang"}, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, "golang", e.Target)
	}

	got, err = s.List(ctx, Filter{Kind: KindSearch, Target: "golang"}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.List(ctx, Filter{Target: "python"}, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteRejectsBadKind(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), Entry{Target: "x"})
	assert.Error(t, err)
	_, err = s.Save(context.Background(), Entry{Kind: "bogus", Target: "x"})
	assert.Error(t, err)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = s.Save(context.Background(), Entry{Kind: KindSearch, Target: "persist"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.List(context.Background(), Filter{Kind: KindSearch}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persist", got[0].Target)
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"", "search", " Video ", "NEXT_PAGE", "playlist"} {
		_, err := ParseKind(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseKind("channel")
	assert.Error(t, err)
}

func TestOpenFallsBackToSQLite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := Open(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1", filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	defer st.Close()
	_, ok := st.(*SQLiteStore)
	assert.True(t, ok)
}
