// Package formatter renders fetched transcripts as text, JSON, SRT, WebVTT,
// Markdown or YAML.
package formatter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/youtube"
)

// Formatter renders one fetched transcript.
type Formatter interface {
	Format(t *youtube.FetchedTranscript) (string, error)
	// Ext is the file extension without the dot.
	Ext() string
}

var registry = map[string]Formatter{
	"text": Text{},
	"txt":  Text{},
	"json": JSON{Indent: "  "},
	"srt":  SRT{},
	"vtt":  WebVTT{},
	"md":   Markdown{},
	"yaml": YAML{},
	"yml":  YAML{},
}

// ByName looks up a formatter by name; matching is case-insensitive.
func ByName(name string) (Formatter, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered format names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Text prints one caption per line.
type Text struct{}

func (Text) Ext() string { return "txt" }

func (Text) Format(t *youtube.FetchedTranscript) (string, error) {
	lines := make([]string, len(t.Pieces))
	for i, p := range t.Pieces {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n"), nil
}

// cueEnd returns the end of cue i, clipped to the start of the next cue.
func cueEnd(pieces []youtube.CaptionPiece, i int) float64 {
	end := pieces[i].End()
	if i+1 < len(pieces) && pieces[i+1].Start < end {
		end = pieces[i+1].Start
	}
	return end
}

// timestamp formats seconds as HH:MM:SS<sep>mmm.
func timestamp(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(math.Round(seconds*1000)) * time.Millisecond
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, d/time.Millisecond)
}
