package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ListRequests       atomic.Int64
	TranscriptRequests atomic.Int64
	VideoInfoRequests  atomic.Int64
	BatchRequests      atomic.Int64
	BatchVideos        atomic.Int64
	FetchErrors        atomic.Int64
	RateLimited        atomic.Int64
	Retries            atomic.Int64
}

var metricKeys = []string{
	"list_requests", "transcript_requests", "video_info_requests",
	"batch_requests", "batch_videos",
	"fetch_errors", "rate_limited", "retries",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"list_requests":       metrics.ListRequests.Load(),
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"video_info_requests": metrics.VideoInfoRequests.Load(),
		"batch_requests":      metrics.BatchRequests.Load(),
		"batch_videos":        metrics.BatchVideos.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"rate_limited":        metrics.RateLimited.Load(),
		"retries":             metrics.Retries.Load(),
		"cache_hits":          hits,
		"cache_misses":        misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the tool layer.
func IncrListRequests()       { metrics.ListRequests.Add(1) }
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrVideoInfoRequests()  { metrics.VideoInfoRequests.Add(1) }
func IncrFetchErrors()        { metrics.FetchErrors.Add(1) }
func IncrRateLimited()        { metrics.RateLimited.Add(1) }

// IncrBatch counts one batch call of n videos.
func IncrBatch(n int) {
	metrics.BatchRequests.Add(1)
	metrics.BatchVideos.Add(int64(n))
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
