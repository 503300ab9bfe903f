package youtube

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	consentMarker     = `action="https://consent.youtube.com/s"`
	consentTokenStart = `name="v" value="`

	// DefaultPageTimeout bounds one watch page request.
	DefaultPageTimeout = 30 * time.Second
)

// PageFetcher downloads watch pages, resolving the cookie consent interstitial.
type PageFetcher struct {
	http    HTTPGetter
	consent ConsentStore
	timeout time.Duration
}

// NewPageFetcher returns a PageFetcher. A nil store gets a fresh MemoryConsentStore;
// a non-positive timeout means DefaultPageTimeout.
func NewPageFetcher(getter HTTPGetter, store ConsentStore, timeout time.Duration) *PageFetcher {
	if store == nil {
		store = &MemoryConsentStore{}
	}
	if timeout <= 0 {
		timeout = DefaultPageTimeout
	}
	return &PageFetcher{http: getter, consent: store, timeout: timeout}
}

// Fetch returns the unescaped watch page HTML for videoID.
// When the consent page is served, a consent cookie is created from the page and
// the request is retried once.
func (f *PageFetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	body, err := f.fetchHTML(ctx, videoID)
	if err != nil {
		return "", err
	}
	if !strings.Contains(body, consentMarker) {
		return body, nil
	}

	token, ok := consentToken(body)
	if !ok {
		return "", newError(ErrFailedToCreateConsentCookie, videoID)
	}
	f.consent.SetConsent("YES+" + token)
	slog.Debug("youtube: consent page served, retrying with cookie", slog.String("video_id", videoID))

	body, err = f.fetchHTML(ctx, videoID)
	if err != nil {
		return "", err
	}
	if strings.Contains(body, consentMarker) {
		return "", newError(ErrFailedToCreateConsentCookie, videoID)
	}
	return body, nil
}

func (f *PageFetcher) fetchHTML(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	headers := map[string]string{"Accept-Language": "en-US"}
	if c := f.consent.Consent(); c != "" {
		headers["Cookie"] = "CONSENT=" + c
	}
	resp, err := f.http.Get(ctx, WatchURL(videoID), headers)
	if err != nil {
		return "", httpError(videoID, 0, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", httpError(videoID, resp.StatusCode, nil)
	}
	return html.UnescapeString(string(resp.Body)), nil
}

// consentToken pulls the value of the hidden "v" input from the consent form.
func consentToken(page string) (string, bool) {
	_, rest, found := strings.Cut(page, consentTokenStart)
	if !found {
		return "", false
	}
	token, _, found := strings.Cut(rest, `"`)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
