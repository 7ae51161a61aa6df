package tubeserver

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerArchiveList(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_archive_list",
		Description: "List previously fetched YouTube results, newest first. Filter by kind (search, next_page, video, playlist) and by target: the query, video id or playlist id.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ArchiveListInput) (*mcp.CallToolResult, engine.ArchiveListOutput, error) {
		out, err := archiveList(ctx, d, input)
		if err != nil {
			return nil, engine.ArchiveListOutput{}, err
		}
		return nil, out, nil
	})
}

func archiveList(ctx context.Context, d Deps, input engine.ArchiveListInput) (engine.ArchiveListOutput, error) {
	if d.Archive == nil {
		return engine.ArchiveListOutput{}, errors.New("archive is disabled")
	}
	kind, err := archive.ParseKind(input.Kind)
	if err != nil {
		return engine.ArchiveListOutput{}, err
	}
	entries, err := d.Archive.List(ctx, archive.Filter{Kind: kind, Target: strings.TrimSpace(input.Target)}, input.Limit)
	if err != nil {
		return engine.ArchiveListOutput{}, err
	}
	return engine.ArchiveListOutput{Entries: entries, Total: len(entries)}, nil
}
