package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeBaseURL       string // overridable for tests and mirrors
	Language             string // hl sent in the default client context
	Region               string // gl sent in the default client context
	ClientVersion        string // WEB client version for Innertube requests
	FetchTimeout         time.Duration
	MaxPageSize          int // upper bound for a tool's limit argument
	BatchConcurrency     int
	LLMAPIKey            string
	LLMAPIKeyFallbacks   []string
	LLMAPIBase           string
	LLMModel             string
	LLMTemperature       float64
	LLMMaxTokens         int
	LLMClient            *llm.Client // nil = summaries disabled
	MaxDescriptionChars  int         // per-video description budget in LLM prompts
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	ArchivePath          string // SQLite archive file; empty = ~/.go_tube/archive.db
	DatabaseURL          string // when set, the archive lives in Postgres
	HTTPClient           *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, archive).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 50
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 4
	}
	if c.MaxDescriptionChars <= 0 {
		c.MaxDescriptionChars = 600
	}
	cfg = c
	Cfg = &cfg
}

// ClampLimit bounds a caller-supplied page size to [1, MaxPageSize].
// Zero or negative means the default of 20.
func ClampLimit(limit int) int {
	if limit <= 0 {
		limit = 20
	}
	if cfg.MaxPageSize > 0 && limit > cfg.MaxPageSize {
		limit = cfg.MaxPageSize
	}
	return limit
}
