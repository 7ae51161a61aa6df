// Package tubeserver exposes the YouTube extraction engine as MCP tools.
package tubeserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the long-lived objects the tools share.
type Deps struct {
	Client  *youtube.Client
	Archive archive.Store // nil = archiving disabled
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 6

// RegisterTools registers youtube_search, youtube_next_page,
// youtube_video_details, youtube_playlist, youtube_batch_search and
// youtube_archive_list on the given MCP server.
func RegisterTools(server *mcp.Server, d Deps) {
	registerSearch(server, d)
	registerNextPage(server, d)
	registerVideoDetails(server, d)
	registerPlaylist(server, d)
	registerBatchSearch(server, d)
	registerArchiveList(server, d)
}

// record archives a result. Failures are logged, never returned.
func (d Deps) record(ctx context.Context, kind archive.Kind, target string, items []youtube.SearchItem, hasMore bool) {
	if d.Archive == nil {
		return
	}
	if _, err := d.Archive.Save(ctx, archive.Entry{Kind: kind, Target: target, Items: items, HasMore: hasMore}); err != nil {
		engine.IncrArchiveError()
		slog.Warn("archive: save failed", slog.String("kind", string(kind)), slog.Any("error", err))
		return
	}
	engine.IncrArchiveWrite()
}

// countFailure bumps the extraction counter for decode failures.
func countFailure(err error) {
	if youtube.IsDataExtraction(err) {
		engine.IncrExtractionError()
	}
}
