package youtube

import (
	"encoding/json"
	"strings"
)

// Markers used to cut the captions object out of the watch page. They are
// owned by YouTube and will drift; extraction fails loudly when they do.
const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
	recaptchaMarker    = `class="g-recaptcha"`
	playabilityMarker  = `"playabilityStatus":`
)

// CaptionsDocument is the playerCaptionsTracklistRenderer object of a watch page.
type CaptionsDocument struct {
	Tracks               []CaptionTrack
	TranslationLanguages []TranslationLanguage
}

// CaptionTrack describes one caption track as listed by the page.
type CaptionTrack struct {
	LanguageCode string
	Language     string
	BaseURL      string
	IsGenerated  bool
	Translatable bool
}

// TranslationLanguage is a target language for on-the-fly translation.
type TranslationLanguage struct {
	LanguageCode string `json:"language_code" yaml:"language_code"`
	Language     string `json:"language" yaml:"language"`
}

// ytText is YouTube's text node: either simpleText or a list of runs.
type ytText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t ytText) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type captionsJSON struct {
	Renderer *struct {
		CaptionTracks []struct {
			BaseURL        string `json:"baseUrl"`
			Name           ytText `json:"name"`
			LanguageCode   string `json:"languageCode"`
			Kind           string `json:"kind"` // "asr" = auto-generated
			IsTranslatable bool   `json:"isTranslatable"`
		} `json:"captionTracks"`
		TranslationLanguages []struct {
			LanguageCode string `json:"languageCode"`
			LanguageName ytText `json:"languageName"`
		} `json:"translationLanguages"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// ExtractCaptions locates and parses the captions object embedded in a watch page.
func ExtractCaptions(page, videoID string) (*CaptionsDocument, error) {
	parts := strings.Split(page, captionsMarker)
	if len(parts) < 2 {
		return nil, diagnosePage(page, videoID, ErrTranscriptsDisabled)
	}

	raw, _, _ := strings.Cut(parts[1], videoDetailsMarker)
	raw = strings.ReplaceAll(raw, "\n", "")

	var data captionsJSON
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		e := newError(ErrTranscriptsDisabled, videoID)
		e.Err = err
		return nil, e
	}
	if data.Renderer == nil {
		return nil, newError(ErrTranscriptsDisabled, videoID)
	}
	if data.Renderer.CaptionTracks == nil {
		return nil, newError(ErrNoTranscriptAvailable, videoID)
	}

	doc := &CaptionsDocument{
		Tracks:               make([]CaptionTrack, 0, len(data.Renderer.CaptionTracks)),
		TranslationLanguages: make([]TranslationLanguage, 0, len(data.Renderer.TranslationLanguages)),
	}
	for _, tl := range data.Renderer.TranslationLanguages {
		doc.TranslationLanguages = append(doc.TranslationLanguages, TranslationLanguage{
			LanguageCode: tl.LanguageCode,
			Language:     tl.LanguageName.String(),
		})
	}
	for _, ct := range data.Renderer.CaptionTracks {
		doc.Tracks = append(doc.Tracks, CaptionTrack{
			LanguageCode: ct.LanguageCode,
			Language:     ct.Name.String(),
			BaseURL:      ct.BaseURL,
			IsGenerated:  ct.Kind == "asr",
			Translatable: ct.IsTranslatable,
		})
	}
	return doc, nil
}

// diagnosePage explains why a page carries no usable player data.
// The order of checks matters: a URL passed as ID, then rate limiting,
// then a missing video; fallback covers everything else.
func diagnosePage(page, videoID string, fallback error) *Error {
	switch {
	case strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://"):
		return newError(ErrInvalidVideoID, videoID)
	case strings.Contains(page, recaptchaMarker):
		return newError(ErrTooManyRequests, videoID)
	case !strings.Contains(page, playabilityMarker):
		return newError(ErrVideoUnavailable, videoID)
	}
	return newError(fallback, videoID)
}
