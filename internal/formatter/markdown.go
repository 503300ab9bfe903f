package formatter

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
)

// Markdown renders a heading plus one timestamped line per caption.
// Formatting markup kept by WithPreserveFormatting becomes Markdown emphasis.
type Markdown struct {
	Title string // heading; defaults to the video id
}

func (Markdown) Ext() string { return "md" }

func (f Markdown) Format(t *youtube.FetchedTranscript) (string, error) {
	title := f.Title
	if title == "" {
		title = t.VideoID
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	origin := "manual"
	if t.IsGenerated {
		origin = "generated"
	}
	fmt.Fprintf(&sb, "_%s (%s, %s)_\n\n", t.Language, t.LanguageCode, origin)

	for _, p := range t.Pieces {
		text := p.Text
		if strings.Contains(text, "<") {
			md, err := htmltomarkdown.ConvertString(text)
			if err != nil {
				return "", fmt.Errorf("convert caption at %.2fs: %w", p.Start, err)
			}
			text = strings.TrimSpace(md)
		}
		fmt.Fprintf(&sb, "- **[%s]** %s\n", clock(p.Start), text)
	}
	return sb.String(), nil
}

// clock formats seconds as M:SS, or H:MM:SS past the hour.
func clock(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
