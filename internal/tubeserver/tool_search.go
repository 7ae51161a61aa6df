package tubeserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearch(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube without an API key. Returns videos and channels (optionally playlists, or a single kind via type) with title, channel, length, live flag and thumbnails, plus a cursor for youtube_next_page. Set summarize for an LLM overview.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeSearchInput) (*mcp.CallToolResult, engine.YouTubeSearchOutput, error) {
		out, err := search(ctx, d, input.Query, searchOptions(input.Type, input.WithPlaylist), input.Limit)
		if err != nil {
			return nil, engine.YouTubeSearchOutput{}, err
		}
		if input.Summarize {
			out.Summary = summarizeOrNote(engine.SummarizeResults(ctx, out.Query, out.Items))
		}
		return nil, out, nil
	})
}

func searchOptions(typ string, withPlaylist bool) youtube.SearchOptions {
	return youtube.SearchOptions{
		Type:         youtube.ItemType(strings.ToLower(strings.TrimSpace(typ))),
		WithPlaylist: withPlaylist,
	}
}

// search runs one cached first-page search and archives it.
func search(ctx context.Context, d Deps, query string, opts youtube.SearchOptions, limit int) (engine.YouTubeSearchOutput, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return engine.YouTubeSearchOutput{}, fmt.Errorf("%w: query is required", youtube.ErrTubeSearch)
	}
	if err := opts.Validate(); err != nil {
		return engine.YouTubeSearchOutput{}, err
	}
	limit = engine.ClampLimit(limit)

	key := engine.CacheKey("youtube_search", query, string(opts.Type), strconv.FormatBool(opts.WithPlaylist), strconv.Itoa(limit))
	return toolutil.Cached(ctx, key, func(ctx context.Context) (engine.YouTubeSearchOutput, error) {
		engine.IncrSearch()
		var page youtube.ResultPage
		err := engine.TrackOperation(ctx, "youtube_search", func(ctx context.Context) error {
			var err error
			page, err = d.Client.Search(ctx, query, opts, limit)
			return err
		})
		if err != nil {
			countFailure(err)
			return engine.YouTubeSearchOutput{}, err
		}
		d.record(ctx, archive.KindSearch, query, page.Items, page.NextPage.HasMore())
		return engine.YouTubeSearchOutput{
			Query:  query,
			Items:  page.Items,
			Cursor: engine.EncodeCursor(page.NextPage),
		}, nil
	})
}

// summarizeOrNote turns an LLM failure into a note instead of failing the tool.
func summarizeOrNote(s *engine.Summary, err error) *engine.Summary {
	if err != nil {
		slog.Warn("llm summary failed", slog.Any("error", err))
		return &engine.Summary{Answer: "LLM summarization failed: " + err.Error()}
	}
	return s
}
