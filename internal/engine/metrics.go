package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests       atomic.Int64
	ContinuationRequests atomic.Int64
	VideoRequests        atomic.Int64
	PlaylistRequests     atomic.Int64
	FetchRequests        atomic.Int64
	FetchErrors          atomic.Int64
	ExtractionErrors     atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	ArchiveWrites        atomic.Int64
	ArchiveErrors        atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"search_requests", "continuation_requests", "video_requests", "playlist_requests",
	"fetch_requests", "fetch_errors", "extraction_errors",
	"llm_calls", "llm_errors",
	"archive_writes", "archive_errors",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":       metrics.SearchRequests.Load(),
		"continuation_requests": metrics.ContinuationRequests.Load(),
		"video_requests":        metrics.VideoRequests.Load(),
		"playlist_requests":     metrics.PlaylistRequests.Load(),
		"fetch_requests":        metrics.FetchRequests.Load(),
		"fetch_errors":          metrics.FetchErrors.Load(),
		"extraction_errors":     metrics.ExtractionErrors.Load(),
		"llm_calls":             metrics.LLMCalls.Load(),
		"llm_errors":            metrics.LLMErrors.Load(),
		"archive_writes":        metrics.ArchiveWrites.Load(),
		"archive_errors":        metrics.ArchiveErrors.Load(),
		"cache_hits":            hits,
		"cache_misses":          misses,
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

// Incrementors for tool handlers and sub-packages.
func IncrSearch()          { metrics.SearchRequests.Add(1) }
func IncrContinuation()    { metrics.ContinuationRequests.Add(1) }
func IncrVideo()           { metrics.VideoRequests.Add(1) }
func IncrPlaylist()        { metrics.PlaylistRequests.Add(1) }
func IncrFetch()           { metrics.FetchRequests.Add(1) }
func IncrFetchError()      { metrics.FetchErrors.Add(1) }
func IncrExtractionError() { metrics.ExtractionErrors.Add(1) }
func IncrArchiveWrite()    { metrics.ArchiveWrites.Add(1) }
func IncrArchiveError()    { metrics.ArchiveErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
