package youtube

import (
	"encoding/json"
	"strconv"
	"strings"
)

const videoDetailsObjMarker = `"videoDetails":`

// VideoInfo is watch page metadata. Fields missing from the page are left empty.
type VideoInfo struct {
	VideoID       string   `json:"video_id" yaml:"video_id"`
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Author        string   `json:"author,omitempty" yaml:"author,omitempty"`
	ChannelID     string   `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	LengthSeconds int      `json:"length_seconds,omitempty" yaml:"length_seconds,omitempty"`
	ViewCount     int64    `json:"view_count,omitempty" yaml:"view_count,omitempty"`
	Keywords      []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

type videoDetailsJSON struct {
	VideoID          string   `json:"videoId"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Author           string   `json:"author"`
	ChannelID        string   `json:"channelId"`
	LengthSeconds    string   `json:"lengthSeconds"`
	ViewCount        string   `json:"viewCount"`
	Keywords         []string `json:"keywords"`
	Thumbnail        struct {
		Thumbnails []struct {
			URL    string `json:"url"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"thumbnails"`
	} `json:"thumbnail"`
}

// ExtractVideoInfo reads the videoDetails object embedded in a watch page.
func ExtractVideoInfo(page, videoID string) (*VideoInfo, error) {
	_, rest, found := strings.Cut(page, videoDetailsObjMarker)
	if !found {
		return nil, diagnosePage(page, videoID, ErrVideoUnavailable)
	}

	// The decoder stops after the first value, ignoring the rest of the page.
	var d videoDetailsJSON
	if err := json.NewDecoder(strings.NewReader(rest)).Decode(&d); err != nil {
		e := newError(ErrVideoUnavailable, videoID)
		e.Err = err
		return nil, e
	}

	info := &VideoInfo{
		VideoID:     videoID,
		Title:       d.Title,
		Description: d.ShortDescription,
		Author:      d.Author,
		ChannelID:   d.ChannelID,
		Keywords:    d.Keywords,
	}
	if d.VideoID != "" {
		info.VideoID = d.VideoID
	}
	if n := len(d.Thumbnail.Thumbnails); n > 0 {
		info.Thumbnail = d.Thumbnail.Thumbnails[n-1].URL
	}
	if n, err := strconv.Atoi(d.LengthSeconds); err == nil {
		info.LengthSeconds = n
	}
	if n, err := strconv.ParseInt(d.ViewCount, 10, 64); err == nil {
		info.ViewCount = n
	}
	return info, nil
}
