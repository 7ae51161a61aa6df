package tubeserver

import (
	"context"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerNextPage(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_next_page",
		Description: "Fetch the next page of a youtube_search or youtube_playlist result from its cursor. Returns items and a new cursor; an empty cursor means there are no more pages.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.NextPageInput) (*mcp.CallToolResult, engine.NextPageOutput, error) {
		out, err := nextPage(ctx, d, input.Cursor, input.Limit)
		if err != nil {
			return nil, engine.NextPageOutput{}, err
		}
		return nil, out, nil
	})
}

func nextPage(ctx context.Context, d Deps, cursor string, limit int) (engine.NextPageOutput, error) {
	np, err := engine.DecodeCursor(cursor)
	if err != nil {
		return engine.NextPageOutput{}, err
	}
	limit = engine.ClampLimit(limit)

	key := engine.CacheKey("youtube_next_page", cursor, strconv.Itoa(limit))
	return toolutil.Cached(ctx, key, func(ctx context.Context) (engine.NextPageOutput, error) {
		engine.IncrContinuation()
		page, err := d.Client.NextPage(ctx, np, limit)
		if err != nil {
			countFailure(err)
			return engine.NextPageOutput{}, err
		}
		d.record(ctx, archive.KindNextPage, string(np.Source), page.Items, page.NextPage.HasMore())
		return engine.NextPageOutput{Items: page.Items, Cursor: engine.EncodeCursor(page.NextPage)}, nil
	})
}
