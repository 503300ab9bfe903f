package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerVideoInfo(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video_info",
		Description: "Get YouTube video metadata from the watch page: title, description, thumbnail, author, channel id, length, view count and keywords.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoInfoInput) (*mcp.CallToolResult, *youtube.VideoInfo, error) {
		out, err := track(ctx, "youtube_video_info", func(ctx context.Context) (*youtube.VideoInfo, error) {
			return h.videoInfo(ctx, input)
		})
		return nil, out, err
	})
}

func (h *handlers) videoInfo(ctx context.Context, input VideoInfoInput) (*youtube.VideoInfo, error) {
	id, err := youtube.ParseVideoID(input.VideoID)
	if err != nil {
		return nil, toolutil.ToolError("youtube_video_info", input.VideoID, err)
	}
	engine.IncrVideoInfoRequests()

	info, err := toolutil.Cached(ctx, engine.CacheKey("youtube_video_info", id), func(ctx context.Context) (*youtube.VideoInfo, error) {
		return h.client.VideoInfo(ctx, id)
	})
	if err != nil {
		return nil, toolutil.ToolError("youtube_video_info", id, err)
	}
	return info, nil
}
