package formatter

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/youtube"
)

// SRT renders SubRip cues.
type SRT struct{}

func (SRT) Ext() string { return "srt" }

func (SRT) Format(t *youtube.FetchedTranscript) (string, error) {
	var sb strings.Builder
	for i, p := range t.Pieces {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1,
			timestamp(p.Start, ","), timestamp(cueEnd(t.Pieces, i), ","), p.Text)
	}
	return sb.String(), nil
}

// WebVTT renders a WEBVTT document.
type WebVTT struct{}

func (WebVTT) Ext() string { return "vtt" }

func (WebVTT) Format(t *youtube.FetchedTranscript) (string, error) {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n")
	if t.LanguageCode != "" {
		fmt.Fprintf(&sb, "Language: %s\n", t.LanguageCode)
	}
	for i, p := range t.Pieces {
		fmt.Fprintf(&sb, "\n%s --> %s\n%s\n",
			timestamp(p.Start, "."), timestamp(cueEnd(t.Pieces, i), "."), p.Text)
	}
	return sb.String(), nil
}
