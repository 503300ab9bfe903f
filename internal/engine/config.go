package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HTTPClient           *http.Client
	BrowserClient        *BrowserClient // nil = plain net/http transport
	PageTimeout          time.Duration
	FetchTimeout         time.Duration // per tool call, including retries
	DefaultLanguages     []string
	RateLimit            float64 // requests per second to youtube.com; 0 = unlimited
	RateBurst            int
	BatchConcurrency     int
	MaxTranscriptChars   int
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
}

var cfg Config

// Cfg exposes the engine configuration for the server and CLI packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if len(c.DefaultLanguages) == 0 {
		c.DefaultLanguages = []string{"en"}
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 4
	}
	cfg = c
	Cfg = &cfg
}
