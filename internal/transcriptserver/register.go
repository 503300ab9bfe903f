// Package transcriptserver exposes the YouTube transcript client as MCP tools:
// youtube_transcript_list, youtube_transcript, youtube_video_info and
// youtube_transcript_batch.
package transcriptserver

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	maxBatchVideos = 20
	slowThreshold  = 15 * time.Second
)

// handlers carries the shared client into every tool.
type handlers struct {
	client *youtube.Client
}

// RegisterTools registers all transcript tools on the given MCP server.
func RegisterTools(server *mcp.Server, client *youtube.Client) {
	h := &handlers{client: client}
	registerTranscriptList(server, h)
	registerTranscript(server, h)
	registerVideoInfo(server, h)
	registerTranscriptBatch(server, h)
}

// track runs fn and logs it when slow.
func track[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := engine.TrackOperation(ctx, name, slowThreshold, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
