package youtube

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/time/rate"
)

// Client ties the scraper together: page fetch, catalog build, transcript fetch
// and video metadata.
type Client struct {
	http    HTTPGetter
	pages   *PageFetcher
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	getter      HTTPGetter
	consent     ConsentStore
	pageTimeout time.Duration
	limit       rate.Limit
	burst       int
}

// WithHTTPGetter sets the transport used for every request.
func WithHTTPGetter(g HTTPGetter) Option {
	return func(c *clientConfig) { c.getter = g }
}

// WithHTTPClient uses a plain *http.Client as transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.getter = NewHTTPGetter(hc) }
}

// WithBrowserClient routes requests through a go-stealth browser client.
func WithBrowserClient(bc *stealth.BrowserClient) Option {
	return func(c *clientConfig) {
		if bc != nil {
			c.getter = NewBrowserGetter(bc)
		}
	}
}

// WithConsentStore shares consent cookies between clients.
func WithConsentStore(s ConsentStore) Option {
	return func(c *clientConfig) { c.consent = s }
}

// WithPageTimeout bounds each watch page request.
func WithPageTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.pageTimeout = d }
}

// WithRateLimit throttles outgoing requests. A zero limit disables throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *clientConfig) {
		c.limit = limit
		c.burst = burst
	}
}

// NewClient builds a Client. Defaults: net/http transport, in-memory consent
// store, 30s page timeout, no throttling.
func NewClient(opts ...Option) *Client {
	cfg := clientConfig{pageTimeout: DefaultPageTimeout, limit: rate.Inf}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.getter == nil {
		cfg.getter = NewHTTPGetter(nil)
	}
	if cfg.limit <= 0 {
		cfg.limit = rate.Inf
	}
	if cfg.burst <= 0 {
		cfg.burst = 1
	}

	c := &Client{limiter: rate.NewLimiter(cfg.limit, cfg.burst)}
	c.http = &limitedGetter{next: cfg.getter, limiter: c.limiter}
	c.pages = NewPageFetcher(c.http, cfg.consent, cfg.pageTimeout)
	return c
}

// limitedGetter waits on the shared limiter before each request.
type limitedGetter struct {
	next    HTTPGetter
	limiter *rate.Limiter
}

func (g *limitedGetter) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return g.next.Get(ctx, url, headers)
}

// ListTranscripts fetches the watch page and builds the caption catalog.
func (c *Client) ListTranscripts(ctx context.Context, videoID string) (*TranscriptList, error) {
	id, err := ParseVideoID(videoID)
	if err != nil {
		return nil, err
	}
	page, err := c.pages.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.buildList(page, id)
}

func (c *Client) buildList(page, videoID string) (*TranscriptList, error) {
	doc, err := ExtractCaptions(page, videoID)
	if err != nil {
		return nil, err
	}
	list := BuildTranscriptList(c.http, videoID, doc)
	slog.Debug("youtube: transcript list built",
		slog.String("video_id", videoID),
		slog.Int("manual", len(list.manual)),
		slog.Int("generated", len(list.generated)))
	return list, nil
}

// FetchedTranscript is the caption text of one resolved transcript.
type FetchedTranscript struct {
	VideoID      string         `json:"video_id" yaml:"video_id"`
	LanguageCode string         `json:"language_code" yaml:"language_code"`
	Language     string         `json:"language" yaml:"language"`
	IsGenerated  bool           `json:"is_generated" yaml:"is_generated"`
	Pieces       []CaptionPiece `json:"pieces" yaml:"pieces"`
}

// Text joins all pieces with single spaces.
func (f *FetchedTranscript) Text() string {
	parts := make([]string, 0, len(f.Pieces))
	for _, p := range f.Pieces {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Duration is the end of the last piece, in seconds.
func (f *FetchedTranscript) Duration() float64 {
	if len(f.Pieces) == 0 {
		return 0
	}
	return f.Pieces[len(f.Pieces)-1].End()
}

// FetchTranscript resolves the best transcript for codes and downloads it.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, codes []string, opts ...FetchOption) (*FetchedTranscript, error) {
	list, err := c.ListTranscripts(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return fetchFrom(ctx, list, codes, opts...)
}

func fetchFrom(ctx context.Context, list *TranscriptList, codes []string, opts ...FetchOption) (*FetchedTranscript, error) {
	t, err := list.FindTranscript(codes...)
	if err != nil {
		return nil, err
	}
	return fetchTranscript(ctx, t, opts...)
}

func fetchTranscript(ctx context.Context, t Transcript, opts ...FetchOption) (*FetchedTranscript, error) {
	pieces, err := t.Fetch(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &FetchedTranscript{
		VideoID:      t.VideoID,
		LanguageCode: t.LanguageCode,
		Language:     t.Language,
		IsGenerated:  t.IsGenerated,
		Pieces:       pieces,
	}, nil
}

// VideoInfo fetches title, description, thumbnail and related metadata.
func (c *Client) VideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	id, err := ParseVideoID(videoID)
	if err != nil {
		return nil, err
	}
	page, err := c.pages.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return ExtractVideoInfo(page, id)
}

// Document is a transcript flattened to text with its video metadata.
type Document struct {
	Content  string            `json:"content" yaml:"content"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

// Load fetches the watch page once and returns the transcript text in
// language (with translation fallback) together with video metadata.
func (c *Client) Load(ctx context.Context, videoID, language string, opts ...FetchOption) (*Document, error) {
	id, err := ParseVideoID(videoID)
	if err != nil {
		return nil, err
	}
	page, err := c.pages.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	info, err := ExtractVideoInfo(page, id)
	if err != nil {
		return nil, err
	}
	list, err := c.buildList(page, id)
	if err != nil {
		return nil, err
	}
	ft, err := fetchFrom(ctx, list, []string{language}, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{
		Content: ft.Text(),
		Metadata: map[string]string{
			"source":    id,
			"title":     info.Title,
			"desc":      info.Description,
			"thumbnail": info.Thumbnail,
			"language":  ft.LanguageCode,
		},
	}, nil
}

// BatchResult is the outcome for one video of FetchMany.
type BatchResult struct {
	VideoID    string
	Transcript *FetchedTranscript
	Err        error
}

// FetchMany fetches transcripts for several videos with at most concurrency
// requests in flight. Results keep the order of videoIDs.
func (c *Client) FetchMany(ctx context.Context, videoIDs []string, codes []string, concurrency int, opts ...FetchOption) []BatchResult {
	if concurrency <= 0 {
		concurrency = 4
	}
	results := make([]BatchResult, len(videoIDs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, id := range videoIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = BatchResult{VideoID: id, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			ft, err := c.FetchTranscript(ctx, id, codes, opts...)
			if err != nil {
				slog.Debug("youtube: batch item failed", slog.String("video_id", id), slog.Any("error", err))
			}
			results[i] = BatchResult{VideoID: id, Transcript: ft, Err: err}
		}(i, id)
	}
	wg.Wait()
	return results
}
