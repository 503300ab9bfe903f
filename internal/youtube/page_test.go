package youtube

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPrefix = "https://www.youtube.com/watch"

func TestPageFetcherPlain(t *testing.T) {
	getter := newFakeGetter().on(watchPrefix, 200, `<p>Tom &amp; Jerry</p>`)
	f := NewPageFetcher(getter, nil, 0)

	page, err := f.Fetch(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Equal(t, `<p>Tom & Jerry</p>`, page)

	require.Len(t, getter.requests, 1)
	req := getter.requests[0]
	assert.Equal(t, "https://www.youtube.com/watch?v="+testVideoID, req.URL)
	assert.Equal(t, "en-US", req.Headers["Accept-Language"])
	_, hasCookie := req.Headers["Cookie"]
	assert.False(t, hasCookie)
}

func TestPageFetcherConsentRetry(t *testing.T) {
	getter := newFakeGetter().
		on(watchPrefix, 200, consentPage).
		on(watchPrefix, 200, watchPage(captionsJSONFixture))
	store := &MemoryConsentStore{}
	f := NewPageFetcher(getter, store, time.Second)

	page, err := f.Fetch(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Contains(t, page, `"captions":`)

	assert.Equal(t, 2, getter.count(watchPrefix))
	assert.Equal(t, "YES+cb.20230101-00-p0.en+FX+123", store.Consent())
	assert.Equal(t, "CONSENT=YES+cb.20230101-00-p0.en+FX+123", getter.requests[1].Headers["Cookie"])
}

func TestPageFetcherConsentPersists(t *testing.T) {
	store := &MemoryConsentStore{}
	store.SetConsent("YES+abc")
	getter := newFakeGetter().on(watchPrefix, 200, "<html></html>")

	_, err := NewPageFetcher(getter, store, 0).Fetch(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Equal(t, "CONSENT=YES+abc", getter.requests[0].Headers["Cookie"])
}

func TestPageFetcherConsentFailures(t *testing.T) {
	t.Run("marker on both attempts", func(t *testing.T) {
		getter := newFakeGetter().on(watchPrefix, 200, consentPage)
		_, err := NewPageFetcher(getter, nil, 0).Fetch(context.Background(), testVideoID)
		require.ErrorIs(t, err, ErrFailedToCreateConsentCookie)
		assert.Equal(t, 2, getter.count(watchPrefix))
	})

	t.Run("no token", func(t *testing.T) {
		getter := newFakeGetter().on(watchPrefix, 200, `<form action="https://consent.youtube.com/s"></form>`)
		_, err := NewPageFetcher(getter, nil, 0).Fetch(context.Background(), testVideoID)
		require.ErrorIs(t, err, ErrFailedToCreateConsentCookie)
		assert.Equal(t, 1, getter.count(watchPrefix))
	})
}

func TestPageFetcherHTTPErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		want      error
		retryable bool
	}{
		{"not found", 404, ErrHTTP, false},
		{"server error", 503, ErrHTTP, true},
		{"rate limited", 429, ErrTooManyRequests, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := newFakeGetter().on(watchPrefix, tt.status, "")
			_, err := NewPageFetcher(getter, nil, 0).Fetch(context.Background(), testVideoID)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.retryable, IsRetryable(err))

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.status, e.StatusCode)
		})
	}

	t.Run("transport", func(t *testing.T) {
		getter := newFakeGetter()
		getter.err = context.DeadlineExceeded
		_, err := NewPageFetcher(getter, nil, 0).Fetch(context.Background(), testVideoID)
		require.ErrorIs(t, err, ErrHTTP)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.True(t, IsRetryable(err))
	})
}

func TestConsentToken(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		want  string
		found bool
	}{
		{"present", consentPage, "cb.20230101-00-p0.en+FX+123", true},
		{"missing", `<form></form>`, "", false},
		{"empty value", `<input name="v" value="">`, "", false},
		{"unterminated", `<input name="v" value="abc`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := consentToken(tt.page)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
