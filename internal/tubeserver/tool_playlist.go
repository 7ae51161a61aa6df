package tubeserver

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlaylist(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_playlist",
		Description: "List the videos of a YouTube playlist from its ID or URL, with the playlist's metadata. Returns a cursor for youtube_next_page when the playlist has more videos.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.PlaylistInput) (*mcp.CallToolResult, engine.PlaylistOutput, error) {
		out, err := playlist(ctx, d, input.Playlist, input.Limit)
		if err != nil {
			return nil, engine.PlaylistOutput{}, err
		}
		return nil, out, nil
	})
}

func playlist(ctx context.Context, d Deps, ref string, limit int) (engine.PlaylistOutput, error) {
	id, err := engine.ParsePlaylistID(ref)
	if err != nil {
		return engine.PlaylistOutput{}, err
	}
	limit = engine.ClampLimit(limit)

	key := engine.CacheKey("youtube_playlist", id, strconv.Itoa(limit))
	return toolutil.Cached(ctx, key, func(ctx context.Context) (engine.PlaylistOutput, error) {
		engine.IncrPlaylist()
		data, err := d.Client.PlaylistData(ctx, id, limit)
		if err != nil {
			countFailure(err)
			return engine.PlaylistOutput{}, err
		}
		out := engine.PlaylistOutput{ID: id, Items: data.Items, Cursor: engine.EncodeCursor(data.NextPage)}
		if len(data.Metadata) > 0 {
			var meta map[string]any
			if json.Unmarshal(data.Metadata, &meta) == nil {
				out.Metadata = meta
				out.Title, _ = meta["title"].(string)
			}
		}
		d.record(ctx, archive.KindPlaylist, id, data.Items, data.NextPage.HasMore())
		return out, nil
	})
}
