package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Error kinds. Match with errors.Is; use errors.As with *Error for details.
var (
	ErrInvalidVideoID                  = errors.New("invalid video id")
	ErrTooManyRequests                 = errors.New("too many requests")
	ErrVideoUnavailable                = errors.New("video unavailable")
	ErrTranscriptsDisabled             = errors.New("transcripts disabled")
	ErrNoTranscriptAvailable           = errors.New("no transcript available")
	ErrNoTranscriptFound               = errors.New("no transcript found")
	ErrNotTranslatable                 = errors.New("transcript not translatable")
	ErrTranslationLanguageNotAvailable = errors.New("translation language not available")
	ErrFailedToCreateConsentCookie     = errors.New("failed to create consent cookie")
	ErrHTTP                            = errors.New("http error")
)

// Error is the single error type returned by this package.
type Error struct {
	Kind       error
	VideoID    string
	StatusCode int      // ErrHTTP and ErrTooManyRequests from a 429
	Requested  []string // language codes asked for
	Available  []string // language codes the video offers
	Err        error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "youtube %s: %s", e.VideoID, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (HTTP %d %s)", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if len(e.Requested) > 0 {
		fmt.Fprintf(&sb, "; requested [%s]", strings.Join(e.Requested, ", "))
	}
	if e.Kind == ErrNoTranscriptFound || len(e.Available) > 0 {
		fmt.Fprintf(&sb, "; available [%s]", strings.Join(e.Available, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, videoID string) *Error {
	return &Error{Kind: kind, VideoID: videoID}
}

// httpError maps a transport failure or a bad status to the taxonomy.
func httpError(videoID string, status int, cause error) *Error {
	kind := ErrHTTP
	if status == http.StatusTooManyRequests {
		kind = ErrTooManyRequests
	}
	return &Error{Kind: kind, VideoID: videoID, StatusCode: status, Err: cause}
}

// IsRetryable reports whether err is a transient HTTP failure worth retrying
// at an outer layer. Rate limiting is reported, never retried.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrHTTP {
		return false
	}
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode != http.StatusTooManyRequests && stealth.IsRetryableStatus(e.StatusCode)
}
