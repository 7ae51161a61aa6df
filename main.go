// go_tube: YouTube search, video and playlist extraction MCP server.
//
// Exposes youtube_search, youtube_next_page, youtube_video_details,
// youtube_playlist, youtube_batch_search and youtube_archive_list.
// Works without a YouTube API key by decoding the data blobs embedded in
// youtube.com pages.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/engine/sources"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/anatolykoptev/go_tube/internal/tubeserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()
	deps := initDeps()
	if deps.Archive != nil {
		defer deps.Archive.Close()
	}

	slog.Info("starting go_tube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tube",
		Version: version,
	}, nil)

	tubeserver.RegisterTools(server, deps)
	slog.Info("tools registered", slog.Int("count", tubeserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		YouTubeBaseURL:       env.Str("YT_BASE_URL", "https://www.youtube.com"),
		Language:             env.Str("YT_LANGUAGE", "en"),
		Region:               env.Str("YT_REGION", "US"),
		ClientVersion:        env.Str("YT_CLIENT_VERSION", ""),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 20*time.Second),
		MaxPageSize:          env.Int("MAX_PAGE_SIZE", 50),
		BatchConcurrency:     env.Int("BATCH_CONCURRENCY", 4),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 4096),
		MaxDescriptionChars:  env.Int("MAX_DESCRIPTION_CHARS", 600),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		ArchivePath:          env.Str("ARCHIVE_PATH", ""),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
		slog.Info("llm client initialized", slog.String("model", c.LLMModel))
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

func initDeps() tubeserver.Deps {
	d := tubeserver.Deps{
		Client: youtube.NewClient(sources.NewYouTubeFetcher(), sources.DefaultYouTubeContext()),
	}

	if env.Str("ARCHIVE_DISABLED", "") != "" {
		return d
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := archive.Open(ctx, engine.Cfg.DatabaseURL, engine.Cfg.ArchivePath)
	if err != nil {
		slog.Warn("archive init failed, running without archive", slog.Any("error", err))
		return d
	}
	d.Archive = store
	_, pg := store.(*archive.PostgresStore)
	slog.Info("archive initialized", slog.Bool("postgres", pg))
	return d
}
