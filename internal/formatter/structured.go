package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"gopkg.in/yaml.v3"
)

// JSON renders the transcript with its pieces.
type JSON struct {
	Indent string // empty = compact
}

func (JSON) Ext() string { return "json" }

func (f JSON) Format(t *youtube.FetchedTranscript) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent == "" {
		data, err = json.Marshal(t)
	} else {
		data, err = json.MarshalIndent(t, "", f.Indent)
	}
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(data), nil
}

// YAML renders the transcript with its pieces.
type YAML struct{}

func (YAML) Ext() string { return "yaml" }

func (YAML) Format(t *youtube.FetchedTranscript) (string, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(data), nil
}
