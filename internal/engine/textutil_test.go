package engine

import (
	"reflect"
	"strings"
	"unicode/utf8"
	"testing"
)

func TestSplitLanguages(t *testing.T) {
	Init(Config{DefaultLanguages: []string{"en", "en-US"}})

	tests := []struct {
		in   string
		want []string
	}{
		{"de", []string{"de"}},
		{" de , en ,de", []string{"de", "en"}},
		{"", []string{"en", "en-US"}},
		{" , ", []string{"en", "en-US"}},
	}
	for _, tt := range tests {
		if got := SplitLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLanguages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormLanguagesNoDefaults(t *testing.T) {
	Init(Config{})
	if got := NormLanguages(nil); !reflect.DeepEqual(got, []string{"en"}) {
		t.Errorf("NormLanguages(nil) = %v", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	got := TruncateRunes("привет мир и всем", 6, "")
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) > 6 {
		t.Errorf("TruncateRunes() = %q", got)
	}
	if got := TruncateRunes("short", 10, "..."); got != "short" {
		t.Errorf("TruncateRunes() = %q", got)
	}
}

func TestFormatMetrics(t *testing.T) {
	IncrTranscriptRequests()
	IncrBatch(3)
	out := FormatMetrics()
	for _, k := range metricKeys {
		if !strings.Contains(out, k+" ") {
			t.Errorf("FormatMetrics() missing %q", k)
		}
	}
	if m := GetMetrics(); m["batch_videos"] < 3 {
		t.Errorf("batch_videos = %d", m["batch_videos"])
	}
}
