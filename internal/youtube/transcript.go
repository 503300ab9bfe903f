package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// CaptionPiece is one timed caption line. Start and Duration are seconds.
type CaptionPiece struct {
	Text     string  `json:"text" yaml:"text"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// End returns the time the piece stops being displayed.
func (p CaptionPiece) End() float64 { return p.Start + p.Duration }

// Transcript describes one caption track. It is a plain value: copies are
// independent and safe to fetch concurrently.
type Transcript struct {
	VideoID              string
	LanguageCode         string
	Language             string
	BaseURL              string
	IsGenerated          bool
	Translatable         bool
	TranslationLanguages []TranslationLanguage

	http HTTPGetter
}

// FetchOption tunes Transcript.Fetch.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	preserveFormatting bool
}

// WithPreserveFormatting keeps inline formatting tags (<i>, <b>, ...) in caption text.
func WithPreserveFormatting() FetchOption {
	return func(o *fetchOptions) { o.preserveFormatting = true }
}

// Fetch downloads and parses the timed-text payload. Every call is a new request.
func (t Transcript) Fetch(ctx context.Context, opts ...FetchOption) ([]CaptionPiece, error) {
	var o fetchOptions
	for _, opt := range opts {
		opt(&o)
	}
	if t.http == nil {
		return nil, httpError(t.VideoID, 0, fmt.Errorf("transcript %s has no http client", t.LanguageCode))
	}

	resp, err := t.http.Get(ctx, t.BaseURL, map[string]string{"Accept-Language": "en-US"})
	if err != nil {
		return nil, httpError(t.VideoID, 0, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpError(t.VideoID, resp.StatusCode, nil)
	}

	pieces, err := ParseTimedText(resp.Body, o.preserveFormatting)
	if err != nil {
		// a 200 with an empty or garbled body is reported as a bad HTTP payload
		return nil, httpError(t.VideoID, resp.StatusCode, err)
	}
	return pieces, nil
}

// Translate derives a transcript machine-translated into languageCode.
// The receiver is left untouched.
func (t Transcript) Translate(languageCode string) (Transcript, error) {
	if !t.Translatable {
		return Transcript{}, newError(ErrNotTranslatable, t.VideoID)
	}
	var target *TranslationLanguage
	for i := range t.TranslationLanguages {
		if t.TranslationLanguages[i].LanguageCode == languageCode {
			target = &t.TranslationLanguages[i]
			break
		}
	}
	if target == nil {
		e := newError(ErrTranslationLanguageNotAvailable, t.VideoID)
		e.Requested = []string{languageCode}
		return Transcript{}, e
	}
	return Transcript{
		VideoID:      t.VideoID,
		LanguageCode: target.LanguageCode,
		Language:     target.Language,
		BaseURL:      withQueryParam(t.BaseURL, "tlang", target.LanguageCode),
		IsGenerated:  true,
		Translatable: false,
		http:         t.http,
	}, nil
}

// IsTranslation reports whether the transcript was derived through Translate.
func (t Transcript) IsTranslation() bool {
	return strings.Contains(t.BaseURL, "tlang=")
}

func (t Transcript) String() string {
	kind := "manual"
	if t.IsGenerated {
		kind = "generated"
	}
	tr := ""
	if t.Translatable {
		tr = " [TRANSLATABLE]"
	}
	return fmt.Sprintf("%s (%q, %s)%s", t.LanguageCode, t.Language, kind, tr)
}

func withQueryParam(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + key + "=" + url.QueryEscape(value)
}

// --- timed-text parsing ---

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Lines   []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",innerxml"`
	} `xml:"text"`
}

var (
	anyTagRE        = regexp.MustCompile(`<[^>]*>`)
	formattingTagRE = regexp.MustCompile(`(?i)^</?(?:strong|em|b|i|mark|small|del|ins|sub|sup)\b[^>]*>$`)
)

// ParseTimedText decodes a <transcript><text start dur>…</text></transcript> payload.
// Elements with no text are dropped; a missing dur reads as 0.
func ParseTimedText(data []byte, preserveFormatting bool) ([]CaptionPiece, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	pieces := make([]CaptionPiece, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := parseSeconds(line.Start)
		if err != nil {
			return nil, fmt.Errorf("parse start %q: %w", line.Start, err)
		}
		dur, err := parseSeconds(line.Dur)
		if err != nil {
			return nil, fmt.Errorf("parse dur %q: %w", line.Dur, err)
		}
		pieces = append(pieces, CaptionPiece{
			Text:     cleanCaption(line.Text, preserveFormatting),
			Start:    start,
			Duration: dur,
		})
	}
	return pieces, nil
}

// cleanCaption undoes the payload's entity escaping (applied twice by YouTube)
// and strips markup.
func cleanCaption(s string, preserveFormatting bool) string {
	s = html.UnescapeString(html.UnescapeString(s))
	if preserveFormatting {
		s = stripNonFormatting(s)
	} else {
		s = anyTagRE.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// stripNonFormatting removes every tag except inline formatting ones.
func stripNonFormatting(s string) string {
	return anyTagRE.ReplaceAllStringFunc(s, func(tag string) string {
		if formattingTagRE.MatchString(tag) {
			return tag
		}
		return ""
	})
}

func parseSeconds(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
