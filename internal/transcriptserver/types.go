package transcriptserver

import "github.com/anatolykoptev/go_transcript/internal/youtube"

// TranscriptListInput is the input of youtube_transcript_list.
type TranscriptListInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video id or URL (watch, youtu.be, shorts, embed)"`
}

// TrackInfo describes one available caption track.
type TrackInfo struct {
	LanguageCode string `json:"language_code"`
	Language     string `json:"language"`
	IsGenerated  bool   `json:"is_generated"`
	Translatable bool   `json:"translatable"`
}

// TranscriptListOutput lists the caption tracks of a video, manual first.
type TranscriptListOutput struct {
	VideoID              string                        `json:"video_id"`
	Transcripts          []TrackInfo                   `json:"transcripts"`
	TranslationLanguages []youtube.TranslationLanguage `json:"translation_languages"`
}

// TranscriptInput is the input of youtube_transcript.
type TranscriptInput struct {
	VideoID            string   `json:"video_id" jsonschema:"YouTube video id or URL"`
	Languages          []string `json:"languages,omitempty" jsonschema:"Language codes in priority order (default: server default, usually en). Falls back to a translation of the first translatable track into the first code"`
	Format             string   `json:"format,omitempty" jsonschema:"Output format: text (default), json, srt, vtt, md, yaml"`
	PreserveFormatting bool     `json:"preserve_formatting,omitempty" jsonschema:"Keep basic formatting tags such as <i> and <b> in caption text"`
	MaxChars           int      `json:"max_chars,omitempty" jsonschema:"Truncate content to this many characters (default: server limit)"`
}

// TranscriptOutput is a rendered transcript.
type TranscriptOutput struct {
	VideoID      string  `json:"video_id"`
	LanguageCode string  `json:"language_code"`
	Language     string  `json:"language"`
	IsGenerated  bool    `json:"is_generated"`
	Format       string  `json:"format"`
	Pieces       int     `json:"pieces"`
	Duration     float64 `json:"duration_seconds"`
	Content      string  `json:"content"`
	Truncated    bool    `json:"truncated,omitempty"`
}

// VideoInfoInput is the input of youtube_video_info.
type VideoInfoInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video id or URL"`
}

// BatchInput is the input of youtube_transcript_batch.
type BatchInput struct {
	VideoIDs           []string `json:"video_ids" jsonschema:"YouTube video ids or URLs (max 20)"`
	Languages          []string `json:"languages,omitempty" jsonschema:"Language codes in priority order, applied to every video"`
	Format             string   `json:"format,omitempty" jsonschema:"Output format: text (default), json, srt, vtt, md, yaml"`
	PreserveFormatting bool     `json:"preserve_formatting,omitempty" jsonschema:"Keep basic formatting tags in caption text"`
	MaxChars           int      `json:"max_chars,omitempty" jsonschema:"Truncate each transcript to this many characters (default: server limit)"`
}

// BatchItem is the outcome for one video. Exactly one of Transcript and Error is set.
type BatchItem struct {
	VideoID    string            `json:"video_id"`
	Transcript *TranscriptOutput `json:"transcript,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// BatchOutput keeps the order of the input video ids.
type BatchOutput struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []BatchItem `json:"results"`
}
