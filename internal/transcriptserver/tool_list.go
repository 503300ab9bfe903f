package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTranscriptList(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript_list",
		Description: "List the caption tracks available for a YouTube video: manually created tracks first, then auto-generated ones, plus the languages YouTube can translate into. Use before youtube_transcript to pick a language.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptListInput) (*mcp.CallToolResult, TranscriptListOutput, error) {
		out, err := track(ctx, "youtube_transcript_list", func(ctx context.Context) (TranscriptListOutput, error) {
			return h.list(ctx, input)
		})
		return nil, out, err
	})
}

func (h *handlers) list(ctx context.Context, input TranscriptListInput) (TranscriptListOutput, error) {
	id, err := youtube.ParseVideoID(input.VideoID)
	if err != nil {
		return TranscriptListOutput{}, toolutil.ToolError("youtube_transcript_list", input.VideoID, err)
	}
	engine.IncrListRequests()

	key := engine.CacheKey("youtube_transcript_list", id)
	out, err := toolutil.Cached(ctx, key, func(ctx context.Context) (TranscriptListOutput, error) {
		l, err := h.client.ListTranscripts(ctx, id)
		if err != nil {
			return TranscriptListOutput{}, err
		}
		return listOutput(l), nil
	})
	if err != nil {
		return TranscriptListOutput{}, toolutil.ToolError("youtube_transcript_list", id, err)
	}
	return out, nil
}

func listOutput(l *youtube.TranscriptList) TranscriptListOutput {
	out := TranscriptListOutput{
		VideoID:              l.VideoID,
		Transcripts:          make([]TrackInfo, 0, l.Len()),
		TranslationLanguages: l.TranslationLanguages(),
	}
	for _, t := range l.All() {
		out.Transcripts = append(out.Transcripts, TrackInfo{
			LanguageCode: t.LanguageCode,
			Language:     t.Language,
			IsGenerated:  t.IsGenerated,
			Translatable: t.Translatable,
		})
	}
	if out.TranslationLanguages == nil {
		out.TranslationLanguages = []youtube.TranslationLanguage{}
	}
	return out
}
