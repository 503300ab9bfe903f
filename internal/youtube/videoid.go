package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

const watchURL = "https://www.youtube.com/watch?v="

var (
	videoIDRE  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoURLRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/|v/)|youtu\.be/)([a-zA-Z0-9_-]{11})(?:[?&#/]|$)`)
)

// ParseVideoID returns the 11-char video ID from a bare ID or any common
// YouTube URL form (watch, youtu.be, shorts, embed, live).
func ParseVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", newError(ErrInvalidVideoID, input)
	}
	if videoIDRE.MatchString(s) {
		return s, nil
	}
	if m := videoURLRE.FindStringSubmatch(s); len(m) >= 2 {
		return m[1], nil
	}
	if looksLikeURL(s) {
		// watch URL with an unusual v= layout
		if u, err := url.Parse(s); err == nil {
			if v := u.Query().Get("v"); videoIDRE.MatchString(v) {
				return v, nil
			}
		}
		return "", newError(ErrInvalidVideoID, input)
	}
	// Opaque identifiers are passed through; the watch page decides.
	return s, nil
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.Contains(s, "youtube.com/") || strings.Contains(s, "youtu.be/")
}

// WatchURL returns the watch page URL for a video ID.
func WatchURL(videoID string) string {
	return watchURL + url.QueryEscape(videoID)
}
