package youtube

import (
	"fmt"
	"slices"
	"strings"
)

// TranscriptList is the caption catalog of one video. It is read-only once built.
//
// A language code lives in at most one of the two maps; a manual track shadows
// a generated one with the same code.
type TranscriptList struct {
	VideoID string

	manual         map[string]Transcript
	generated      map[string]Transcript
	manualOrder    []string
	generatedOrder []string
	translations   []TranslationLanguage
}

// BuildTranscriptList turns an extracted captions document into a catalog.
// Transcripts fetch through getter.
func BuildTranscriptList(getter HTTPGetter, videoID string, doc *CaptionsDocument) *TranscriptList {
	l := &TranscriptList{
		VideoID:      videoID,
		manual:       make(map[string]Transcript),
		generated:    make(map[string]Transcript),
		translations: append([]TranslationLanguage(nil), doc.TranslationLanguages...),
	}

	// Manual tracks first so they win code collisions regardless of page order.
	for _, generated := range []bool{false, true} {
		for _, tr := range doc.Tracks {
			if tr.IsGenerated != generated {
				continue
			}
			if _, ok := l.manual[tr.LanguageCode]; ok {
				continue
			}
			if _, ok := l.generated[tr.LanguageCode]; ok {
				continue
			}
			t := Transcript{
				VideoID:      videoID,
				LanguageCode: tr.LanguageCode,
				Language:     tr.Language,
				BaseURL:      tr.BaseURL,
				IsGenerated:  tr.IsGenerated,
				Translatable: tr.Translatable,
				http:         getter,
			}
			if tr.Translatable {
				t.TranslationLanguages = slices.Clone(l.translations)
			}
			if generated {
				l.generated[tr.LanguageCode] = t
				l.generatedOrder = append(l.generatedOrder, tr.LanguageCode)
			} else {
				l.manual[tr.LanguageCode] = t
				l.manualOrder = append(l.manualOrder, tr.LanguageCode)
			}
		}
	}
	return l
}

// FindTranscript returns the first transcript matching codes in preference
// order, manual before generated for each code. Without an exact match it
// translates a translatable transcript (manual preferred) into codes[0].
func (l *TranscriptList) FindTranscript(codes ...string) (Transcript, error) {
	if t, ok := l.find(codes, l.manual, l.generated); ok {
		return t, nil
	}
	if len(codes) > 0 {
		if src, ok := l.translationSource(); ok {
			if t, err := src.Translate(codes[0]); err == nil {
				return t, nil
			}
		}
	}
	return Transcript{}, l.notFound(codes)
}

// FindManuallyCreatedTranscript looks only at manually created transcripts.
func (l *TranscriptList) FindManuallyCreatedTranscript(codes ...string) (Transcript, error) {
	if t, ok := l.find(codes, l.manual); ok {
		return t, nil
	}
	return Transcript{}, l.notFound(codes)
}

// FindGeneratedTranscript looks only at generated transcripts.
func (l *TranscriptList) FindGeneratedTranscript(codes ...string) (Transcript, error) {
	if t, ok := l.find(codes, l.generated); ok {
		return t, nil
	}
	return Transcript{}, l.notFound(codes)
}

func (l *TranscriptList) find(codes []string, tiers ...map[string]Transcript) (Transcript, bool) {
	for _, code := range codes {
		for _, tier := range tiers {
			if t, ok := tier[code]; ok {
				return t, true
			}
		}
	}
	return Transcript{}, false
}

func (l *TranscriptList) translationSource() (Transcript, bool) {
	for _, code := range l.manualOrder {
		if t := l.manual[code]; t.Translatable {
			return t, true
		}
	}
	for _, code := range l.generatedOrder {
		if t := l.generated[code]; t.Translatable {
			return t, true
		}
	}
	return Transcript{}, false
}

func (l *TranscriptList) notFound(codes []string) *Error {
	e := newError(ErrNoTranscriptFound, l.VideoID)
	e.Requested = append([]string(nil), codes...)
	e.Available = l.LanguageCodes()
	return e
}

// Manual returns manually created transcripts in page order.
func (l *TranscriptList) Manual() []Transcript {
	return collect(l.manualOrder, l.manual)
}

// Generated returns generated transcripts in page order.
func (l *TranscriptList) Generated() []Transcript {
	return collect(l.generatedOrder, l.generated)
}

// All returns manual then generated transcripts.
func (l *TranscriptList) All() []Transcript {
	return append(l.Manual(), l.Generated()...)
}

// Len is the number of catalogued transcripts.
func (l *TranscriptList) Len() int { return len(l.manual) + len(l.generated) }

// LanguageCodes lists every available code, manual first.
func (l *TranscriptList) LanguageCodes() []string {
	codes := make([]string, 0, l.Len())
	codes = append(codes, l.manualOrder...)
	return append(codes, l.generatedOrder...)
}

// TranslationLanguages returns the translation targets shared by translatable transcripts.
func (l *TranscriptList) TranslationLanguages() []TranslationLanguage {
	return append([]TranslationLanguage(nil), l.translations...)
}

func collect(order []string, m map[string]Transcript) []Transcript {
	out := make([]Transcript, 0, len(order))
	for _, code := range order {
		out = append(out, m[code])
	}
	return out
}

func (l *TranscriptList) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "For this video (%s) transcripts are available in the following languages:\n\n", l.VideoID)
	writeSection(&sb, "MANUALLY CREATED", l.Manual())
	sb.WriteString("\n")
	writeSection(&sb, "GENERATED", l.Generated())
	sb.WriteString("\n(TRANSLATION LANGUAGES)\n")
	if len(l.translations) == 0 {
		sb.WriteString("None\n")
	}
	for _, tl := range l.translations {
		fmt.Fprintf(&sb, " - %s (%q)\n", tl.LanguageCode, tl.Language)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, ts []Transcript) {
	fmt.Fprintf(sb, "(%s)\n", title)
	if len(ts) == 0 {
		sb.WriteString("None\n")
	}
	for _, t := range ts {
		fmt.Fprintf(sb, " - %s\n", t)
	}
}
