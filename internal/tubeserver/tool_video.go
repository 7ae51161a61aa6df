package tubeserver

import (
	"context"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerVideoDetails(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video_details",
		Description: "Get a YouTube video's details from its ID or URL: title, channel, description, keywords, thumbnails, live flag and suggested videos. Set summarize for an LLM summary of the description.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoDetailsInput) (*mcp.CallToolResult, engine.VideoDetailsOutput, error) {
		out, err := videoDetails(ctx, d, input.Video)
		if err != nil {
			return nil, engine.VideoDetailsOutput{}, err
		}
		if input.Summarize {
			out.Summary = summarizeOrNote(engine.SummarizeVideo(ctx, out.Video))
		}
		return nil, out, nil
	})
}

func videoDetails(ctx context.Context, d Deps, video string) (engine.VideoDetailsOutput, error) {
	id, err := engine.ParseVideoID(video)
	if err != nil {
		return engine.VideoDetailsOutput{}, err
	}
	key := engine.CacheKey("youtube_video_details", id)
	return toolutil.Cached(ctx, key, func(ctx context.Context) (engine.VideoDetailsOutput, error) {
		engine.IncrVideo()
		details, err := d.Client.VideoDetails(ctx, id)
		if err != nil {
			countFailure(err)
			return engine.VideoDetailsOutput{}, err
		}
		d.record(ctx, archive.KindVideo, id, details.Suggestion, false)
		return engine.VideoDetailsOutput{URL: "https://www.youtube.com/watch?v=" + id, Video: details}, nil
	})
}
