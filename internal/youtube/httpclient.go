package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	stealth "github.com/anatolykoptev/go-stealth"
)

// maxBodyBytes caps watch pages and caption payloads.
const maxBodyBytes = 6 * 1024 * 1024

// Response is the part of an HTTP response the scraper needs.
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPGetter issues GET requests with custom headers. Timeouts come from ctx.
type HTTPGetter interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
}

// stdGetter is an HTTPGetter over net/http.
type stdGetter struct {
	client *http.Client
}

// NewHTTPGetter wraps an *http.Client. A nil client gets a pooled default.
func NewHTTPGetter(client *http.Client) HTTPGetter {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
			},
		}
	}
	return &stdGetter{client: client}
}

func (g *stdGetter) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", stealth.RandomUserAgent())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// browserGetter routes requests through go-stealth's Chrome-fingerprinted client.
type browserGetter struct {
	bc *stealth.BrowserClient
}

// NewBrowserGetter adapts a stealth browser client. Its requests are not
// cancellable mid-flight; ctx is checked before sending.
func NewBrowserGetter(bc *stealth.BrowserClient) HTTPGetter {
	return &browserGetter{bc: bc}
}

func (g *browserGetter) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := stealth.ChromeHeaders()
	for k, v := range headers {
		h[strings.ToLower(k)] = v
	}
	data, _, status, err := g.bc.Do(http.MethodGet, url, h, nil)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}
	if len(data) > maxBodyBytes {
		data = data[:maxBodyBytes]
	}
	return &Response{StatusCode: status, Body: data}, nil
}

// ConsentStore keeps the consent cookie value between page fetches.
type ConsentStore interface {
	Consent() string
	SetConsent(value string)
}

// MemoryConsentStore is a process-local ConsentStore. The zero value is ready to use.
type MemoryConsentStore struct {
	mu    sync.RWMutex
	value string
}

func (s *MemoryConsentStore) Consent() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *MemoryConsentStore) SetConsent(value string) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
}
