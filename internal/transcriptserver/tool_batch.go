package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTranscriptBatch(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript_batch",
		Description: fmt.Sprintf("Fetch transcripts for up to %d YouTube videos in one call, in parallel. Each video resolves languages like youtube_transcript; failures are reported per video and do not fail the batch.", maxBatchVideos),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BatchInput) (*mcp.CallToolResult, BatchOutput, error) {
		out, err := track(ctx, "youtube_transcript_batch", func(ctx context.Context) (BatchOutput, error) {
			return h.batch(ctx, input)
		})
		return nil, out, err
	})
}

func (h *handlers) batch(ctx context.Context, input BatchInput) (BatchOutput, error) {
	if len(input.VideoIDs) == 0 {
		return BatchOutput{}, errors.New("video_ids is required")
	}
	if len(input.VideoIDs) > maxBatchVideos {
		return BatchOutput{}, fmt.Errorf("at most %d video_ids per call, got %d", maxBatchVideos, len(input.VideoIDs))
	}
	formatName, f, err := resolveFormat(input.Format)
	if err != nil {
		return BatchOutput{}, err
	}
	engine.IncrBatch(len(input.VideoIDs))

	langs := engine.NormLanguages(input.Languages)
	limit := maxChars(input.MaxChars)
	items := make([]BatchItem, len(input.VideoIDs))
	fetched := make([]*youtube.FetchedTranscript, len(input.VideoIDs))

	// Serve what the cache has; fetch the rest in one bounded batch.
	var pending []string
	var pendingIdx []int
	for i, raw := range input.VideoIDs {
		items[i].VideoID = raw
		id, err := youtube.ParseVideoID(raw)
		if err != nil {
			items[i].Error = toolutil.ToolError("youtube_transcript_batch", raw, err).Error()
			continue
		}
		items[i].VideoID = id
		if ft, ok := engine.CacheLoadJSON[*youtube.FetchedTranscript](ctx, transcriptKey(id, langs, input.PreserveFormatting)); ok {
			fetched[i] = ft
			continue
		}
		pending = append(pending, id)
		pendingIdx = append(pendingIdx, i)
	}

	if len(pending) > 0 {
		fctx := ctx
		if d := engine.Cfg.FetchTimeout; d > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		opts := fetchOptions(input.PreserveFormatting)
		results := h.client.FetchMany(fctx, pending, langs, engine.Cfg.BatchConcurrency, opts...)
		h.retryTransient(ctx, results, langs, opts)
		for j, r := range results {
			i := pendingIdx[j]
			if r.Err != nil {
				items[i].Error = toolutil.ToolError("youtube_transcript_batch", r.VideoID, r.Err).Error()
				continue
			}
			fetched[i] = r.Transcript
			engine.CacheStoreJSON(ctx, transcriptKey(r.VideoID, langs, input.PreserveFormatting), r.Transcript)
		}
	}

	out := BatchOutput{Results: items}
	for i, ft := range fetched {
		if ft == nil {
			out.Failed++
			continue
		}
		rendered, err := render(ft, formatName, f, limit)
		if err != nil {
			items[i].Error = err.Error()
			out.Failed++
			continue
		}
		items[i].Transcript = &rendered
		out.Succeeded++
	}
	slog.Info("youtube_transcript_batch done",
		slog.Int("videos", len(items)), slog.Int("succeeded", out.Succeeded), slog.Int("failed", out.Failed))
	return out, nil
}

// retryTransient refetches the items that failed with a transient HTTP error,
// under the same retry policy as the single-video tools.
func (h *handlers) retryTransient(ctx context.Context, results []youtube.BatchResult, langs []string, opts []youtube.FetchOption) {
	sem := make(chan struct{}, max(engine.Cfg.BatchConcurrency, 1))
	var wg sync.WaitGroup
	for i := range results {
		r := &results[i]
		if !youtube.IsRetryable(r.Err) {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			slog.Debug("youtube_transcript_batch retry", slog.String("video_id", r.VideoID), slog.Any("error", r.Err))
			r.Transcript, r.Err = toolutil.Call(ctx, func(ctx context.Context) (*youtube.FetchedTranscript, error) {
				return h.client.FetchTranscript(ctx, r.VideoID, langs, opts...)
			})
		}()
	}
	wg.Wait()
}
