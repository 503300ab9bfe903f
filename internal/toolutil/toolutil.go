// Package toolutil provides shared helpers for the transcript MCP tools:
// cached calls with retry, and error reporting.
package toolutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
)

// Cached returns the value stored under key, or runs fn with the configured
// fetch timeout and retry policy and caches a successful result.
func Cached[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	if out, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return out, nil
	}
	out, err := Call(ctx, fn)
	if err != nil {
		return out, err
	}
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}

// Call runs fn under engine.Cfg.FetchTimeout, retrying transient HTTP failures.
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	if d := engine.Cfg.FetchTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return engine.RetryDo(ctx, engine.DefaultRetryConfig, youtube.IsRetryable, func() (T, error) {
		return fn(ctx)
	})
}

// ToolError logs a failed tool call, counts it and returns the error to send
// back to the MCP client.
func ToolError(tool, videoID string, err error) error {
	engine.IncrFetchErrors()
	if errors.Is(err, youtube.ErrTooManyRequests) {
		engine.IncrRateLimited()
	}
	slog.Warn(tool+" error", slog.String("video_id", videoID), slog.Any("error", err))
	if hint := Hint(err); hint != "" {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}

// Hint suggests what the caller can do about err, or returns "".
func Hint(err error) string {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoID):
		return "pass the 11 character video id or a youtube.com / youtu.be URL"
	case errors.Is(err, youtube.ErrTooManyRequests):
		return "youtube is rate limiting this IP; retry later"
	case errors.Is(err, youtube.ErrNoTranscriptFound):
		return "use youtube_transcript_list to see available languages"
	case errors.Is(err, youtube.ErrTranscriptsDisabled), errors.Is(err, youtube.ErrNoTranscriptAvailable):
		return "this video has no captions"
	}
	return ""
}
