package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextPrefix = "https://www.youtube.com/api/timedtext"

func TestTranscriptFetch(t *testing.T) {
	getter := newFakeGetter().on(timedTextPrefix, 200, timedTextFixture)
	doc, err := ExtractCaptions(watchPage(captionsJSONFixture), testVideoID)
	require.NoError(t, err)
	l := BuildTranscriptList(getter, testVideoID, doc)

	tr, err := l.FindTranscript("en")
	require.NoError(t, err)

	pieces, err := tr.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []CaptionPiece{
		{Text: "Hey there", Start: 0.5, Duration: 1.54},
		{Text: "how are & you 'doing'", Start: 2.04, Duration: 3.1},
		{Text: "fine thanks", Start: 5.5, Duration: 0},
	}, pieces)

	require.Len(t, getter.requests, 1)
	assert.Equal(t, tr.BaseURL, getter.requests[0].URL)
	assert.Equal(t, "en-US", getter.requests[0].Headers["Accept-Language"])

	// every call is a fresh round trip
	_, err = tr.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, getter.count(timedTextPrefix))
}

func TestTranscriptFetchPreserveFormatting(t *testing.T) {
	getter := newFakeGetter().on(timedTextPrefix, 200, timedTextFixture)
	tr := Transcript{VideoID: testVideoID, BaseURL: timedTextPrefix + "?v=x", http: getter}

	pieces, err := tr.Fetch(context.Background(), WithPreserveFormatting())
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, "<i>fine</i> thanks", pieces[2].Text)
}

func TestTranscriptFetchErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		tr := Transcript{VideoID: testVideoID, BaseURL: timedTextPrefix, http: newFakeGetter().on(timedTextPrefix, 404, "")}
		_, err := tr.Fetch(context.Background())
		require.ErrorIs(t, err, ErrHTTP)
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, 404, e.StatusCode)
	})

	t.Run("rate limited", func(t *testing.T) {
		tr := Transcript{VideoID: testVideoID, BaseURL: timedTextPrefix, http: newFakeGetter().on(timedTextPrefix, 429, "")}
		_, err := tr.Fetch(context.Background())
		require.ErrorIs(t, err, ErrTooManyRequests)
	})

	t.Run("transport", func(t *testing.T) {
		g := newFakeGetter()
		g.err = errors.New("connection reset")
		tr := Transcript{VideoID: testVideoID, BaseURL: timedTextPrefix, http: g}
		_, err := tr.Fetch(context.Background())
		require.ErrorIs(t, err, ErrHTTP)
		assert.Contains(t, err.Error(), "connection reset")
	})

	for name, body := range map[string]string{
		"bad xml":    "<transcript><text",
		"empty body": "",
	} {
		t.Run(name, func(t *testing.T) {
			tr := Transcript{VideoID: testVideoID, BaseURL: timedTextPrefix, http: newFakeGetter().on(timedTextPrefix, 200, body)}
			_, err := tr.Fetch(context.Background())
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, ErrHTTP, e.Kind)
			assert.Equal(t, testVideoID, e.VideoID)
			assert.Equal(t, 200, e.StatusCode)
			assert.Contains(t, err.Error(), "parse timedtext XML")
			assert.False(t, IsRetryable(err))
		})
	}

	t.Run("no client", func(t *testing.T) {
		_, err := Transcript{VideoID: testVideoID}.Fetch(context.Background())
		require.ErrorIs(t, err, ErrHTTP)
	})
}

func TestTranscriptTranslate(t *testing.T) {
	src := Transcript{
		VideoID:      testVideoID,
		LanguageCode: "en",
		Language:     "English",
		BaseURL:      "https://www.youtube.com/api/timedtext?v=x&lang=en",
		Translatable: true,
		TranslationLanguages: []TranslationLanguage{
			{LanguageCode: "de", Language: "German"},
			{LanguageCode: "zh-Hans", Language: "Chinese (Simplified)"},
		},
	}

	tr, err := src.Translate("zh-Hans")
	require.NoError(t, err)
	assert.Equal(t, "zh-Hans", tr.LanguageCode)
	assert.Equal(t, "Chinese (Simplified)", tr.Language)
	assert.Equal(t, "https://www.youtube.com/api/timedtext?v=x&lang=en&tlang=zh-Hans", tr.BaseURL)
	assert.True(t, tr.IsGenerated)
	assert.False(t, tr.Translatable)
	assert.Empty(t, tr.TranslationLanguages)
	assert.True(t, tr.IsTranslation())

	// source untouched
	assert.Equal(t, "en", src.LanguageCode)
	assert.True(t, src.Translatable)
	assert.False(t, src.IsTranslation())

	// translations are not re-translatable
	_, err = tr.Translate("de")
	require.ErrorIs(t, err, ErrNotTranslatable)
}

func TestTranscriptTranslateErrors(t *testing.T) {
	_, err := Transcript{VideoID: testVideoID, LanguageCode: "en"}.Translate("de")
	require.ErrorIs(t, err, ErrNotTranslatable)

	src := Transcript{
		VideoID:              testVideoID,
		Translatable:         true,
		TranslationLanguages: []TranslationLanguage{{LanguageCode: "de", Language: "German"}},
	}
	_, err = src.Translate("xx")
	require.ErrorIs(t, err, ErrTranslationLanguageNotAvailable)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"xx"}, e.Requested)
}

func TestParseTimedText(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []CaptionPiece
		wantErr bool
	}{
		{
			name: "three ordered entries",
			data: `<transcript><text start="1" dur="2">a</text><text start="3" dur="1.5">b</text><text start="4.5" dur="0.25">c</text></transcript>`,
			want: []CaptionPiece{
				{Text: "a", Start: 1, Duration: 2},
				{Text: "b", Start: 3, Duration: 1.5},
				{Text: "c", Start: 4.5, Duration: 0.25},
			},
		},
		{
			name: "missing dur",
			data: `<transcript><text start="1">a</text></transcript>`,
			want: []CaptionPiece{{Text: "a", Start: 1}},
		},
		{
			name: "empty transcript",
			data: `<transcript></transcript>`,
			want: []CaptionPiece{},
		},
		{
			name:    "bad start",
			data:    `<transcript><text start="x" dur="1">a</text></transcript>`,
			wantErr: true,
		},
		{
			name:    "not xml",
			data:    `{"events":[]}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimedText([]byte(tt.data), false)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCaptionPieceEnd(t *testing.T) {
	assert.InDelta(t, 3.5, CaptionPiece{Start: 1.25, Duration: 2.25}.End(), 1e-9)
}
