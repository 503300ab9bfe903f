package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/formatter"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTranscript(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the transcript (captions) of a YouTube video in the first available requested language. Manually created captions win over auto-generated ones; if no requested language exists, a translatable track is machine-translated into the first requested language. Output as plain text, JSON, SRT, WebVTT, Markdown or YAML.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		out, err := track(ctx, "youtube_transcript", func(ctx context.Context) (TranscriptOutput, error) {
			return h.transcript(ctx, input)
		})
		return nil, out, err
	})
}

func (h *handlers) transcript(ctx context.Context, input TranscriptInput) (TranscriptOutput, error) {
	if strings.TrimSpace(input.VideoID) == "" {
		return TranscriptOutput{}, errors.New("video_id is required")
	}
	formatName, f, err := resolveFormat(input.Format)
	if err != nil {
		return TranscriptOutput{}, err
	}
	id, err := youtube.ParseVideoID(input.VideoID)
	if err != nil {
		return TranscriptOutput{}, toolutil.ToolError("youtube_transcript", input.VideoID, err)
	}
	engine.IncrTranscriptRequests()

	langs := engine.NormLanguages(input.Languages)
	key := transcriptKey(id, langs, input.PreserveFormatting)
	ft, err := toolutil.Cached(ctx, key, func(ctx context.Context) (*youtube.FetchedTranscript, error) {
		return h.client.FetchTranscript(ctx, id, langs, fetchOptions(input.PreserveFormatting)...)
	})
	if err != nil {
		return TranscriptOutput{}, toolutil.ToolError("youtube_transcript", id, err)
	}
	return render(ft, formatName, f, maxChars(input.MaxChars))
}

func transcriptKey(id string, langs []string, preserve bool) string {
	return engine.CacheKey("youtube_transcript", id, strings.Join(langs, ","), strconv.FormatBool(preserve))
}

func fetchOptions(preserve bool) []youtube.FetchOption {
	if preserve {
		return []youtube.FetchOption{youtube.WithPreserveFormatting()}
	}
	return nil
}

func resolveFormat(name string) (string, formatter.Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "text"
	}
	f, err := formatter.ByName(name)
	if err != nil {
		return "", nil, err
	}
	return name, f, nil
}

func maxChars(requested int) int {
	limit := engine.Cfg.MaxTranscriptChars
	if requested > 0 && (limit <= 0 || requested < limit) {
		return requested
	}
	return limit
}

// render formats ft and truncates the content to limit runes (0 = no limit).
func render(ft *youtube.FetchedTranscript, formatName string, f formatter.Formatter, limit int) (TranscriptOutput, error) {
	content, err := f.Format(ft)
	if err != nil {
		return TranscriptOutput{}, fmt.Errorf("format %s: %w", formatName, err)
	}
	out := TranscriptOutput{
		VideoID:      ft.VideoID,
		LanguageCode: ft.LanguageCode,
		Language:     ft.Language,
		IsGenerated:  ft.IsGenerated,
		Format:       formatName,
		Pieces:       len(ft.Pieces),
		Duration:     ft.Duration(),
		Content:      content,
	}
	if limit > 0 {
		if cut := engine.TruncateRunes(content, limit, "..."); cut != content {
			out.Content = cut
			out.Truncated = true
		}
	}
	return out, nil
}
