package tubeserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const maxBatchQueries = 10

func registerBatchSearch(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_batch_search",
		Description: "Run up to 10 YouTube searches concurrently. Each query gets its own items and cursor; a failing query reports its error without failing the others.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.BatchSearchInput) (*mcp.CallToolResult, engine.BatchSearchOutput, error) {
		out, err := batchSearch(ctx, d, input)
		if err != nil {
			return nil, engine.BatchSearchOutput{}, err
		}
		return nil, out, nil
	})
}

func batchSearch(ctx context.Context, d Deps, input engine.BatchSearchInput) (engine.BatchSearchOutput, error) {
	var queries []string
	seen := make(map[string]bool)
	for _, q := range input.Queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		return engine.BatchSearchOutput{}, fmt.Errorf("%w: queries are required", youtube.ErrTubeSearch)
	}
	if len(queries) > maxBatchQueries {
		queries = queries[:maxBatchQueries]
	}
	opts := searchOptions(input.Type, false)
	if err := opts.Validate(); err != nil {
		return engine.BatchSearchOutput{}, err
	}

	results := toolutil.MapParallel(ctx, queries, engine.Cfg.BatchConcurrency, func(ctx context.Context, q string) engine.BatchSearchResult {
		out, err := search(ctx, d, q, opts, input.Limit)
		if err != nil {
			return engine.BatchSearchResult{Query: q, Error: err.Error()}
		}
		return engine.BatchSearchResult{Query: q, Items: out.Items, Cursor: out.Cursor}
	})
	return engine.BatchSearchOutput{Results: results}, nil
}
