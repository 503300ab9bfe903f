package engine

import (
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"golang.org/x/time/rate"
)

// NewYouTubeClient builds a youtube.Client from Cfg. The stealth browser client
// wins over HTTPClient when both are set.
func NewYouTubeClient() *youtube.Client {
	opts := []youtube.Option{youtube.WithPageTimeout(cfg.PageTimeout)}
	switch {
	case cfg.BrowserClient != nil:
		opts = append(opts, youtube.WithBrowserClient(cfg.BrowserClient))
	case cfg.HTTPClient != nil:
		opts = append(opts, youtube.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, youtube.WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst))
	}
	return youtube.NewClient(opts...)
}
