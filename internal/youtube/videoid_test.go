package youtube

import (
	"errors"
	"testing"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "bare id", input: "VO6XEQIsCoM", want: "VO6XEQIsCoM"},
		{name: "bare id with spaces", input: "  VO6XEQIsCoM ", want: "VO6XEQIsCoM"},
		{name: "watch url", input: "https://www.youtube.com/watch?v=VO6XEQIsCoM", want: "VO6XEQIsCoM"},
		{name: "watch url extra params", input: "https://www.youtube.com/watch?feature=share&v=VO6XEQIsCoM&t=123", want: "VO6XEQIsCoM"},
		{name: "short url", input: "https://youtu.be/VO6XEQIsCoM?si=abc", want: "VO6XEQIsCoM"},
		{name: "shorts", input: "https://www.youtube.com/shorts/VO6XEQIsCoM", want: "VO6XEQIsCoM"},
		{name: "embed", input: "https://www.youtube.com/embed/VO6XEQIsCoM", want: "VO6XEQIsCoM"},
		{name: "mobile", input: "https://m.youtube.com/watch?v=VO6XEQIsCoM", want: "VO6XEQIsCoM"},
		{name: "opaque id passes through", input: "abc", want: "abc"},
		{name: "empty", input: "", wantErr: true},
		{name: "url without id", input: "https://www.youtube.com/channel/UC123", wantErr: true},
		{name: "malformed url", input: "https://www.youtube.com/watch?v=short", wantErr: true},
		{name: "watch id too long", input: "https://www.youtube.com/watch?v=abcdefghijklmnop", wantErr: true},
		{name: "short url id too long", input: "https://youtu.be/abcdefghijklmnop", wantErr: true},
		{name: "shorts id too long", input: "https://www.youtube.com/shorts/abcdefghijklmnop", wantErr: true},
		{name: "embed with path suffix", input: "https://www.youtube.com/embed/VO6XEQIsCoM/", want: "VO6XEQIsCoM"},
		{name: "watch url fragment", input: "https://www.youtube.com/watch?v=VO6XEQIsCoM#t=30", want: "VO6XEQIsCoM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVideoID(%q) = %q, want error", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidVideoID) {
					t.Errorf("ParseVideoID(%q) error = %v, want ErrInvalidVideoID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("VO6XEQIsCoM"); got != "https://www.youtube.com/watch?v=VO6XEQIsCoM" {
		t.Errorf("WatchURL() = %q", got)
	}
}
