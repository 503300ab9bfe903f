package youtube

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// fakeGetter serves canned responses keyed by URL prefix and records requests.
type fakeGetter struct {
	mu       sync.Mutex
	routes   map[string][]*Response // popped in order; last one repeats
	requests []fakeRequest
	err      error
}

type fakeRequest struct {
	URL     string
	Headers map[string]string
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{routes: make(map[string][]*Response)}
}

func (f *fakeGetter) on(prefix string, status int, body string) *fakeGetter {
	f.routes[prefix] = append(f.routes[prefix], &Response{StatusCode: status, Body: []byte(body)})
	return f
}

func (f *fakeGetter) Get(_ context.Context, url string, headers map[string]string) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := make(map[string]string, len(headers))
	for k, v := range headers {
		h[k] = v
	}
	f.requests = append(f.requests, fakeRequest{URL: url, Headers: h})
	if f.err != nil {
		return nil, f.err
	}
	for prefix, queue := range f.routes {
		if !strings.HasPrefix(url, prefix) {
			continue
		}
		resp := queue[0]
		if len(queue) > 1 {
			f.routes[prefix] = queue[1:]
		}
		return resp, nil
	}
	return nil, errors.New("no route for " + url)
}

func (f *fakeGetter) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r.URL, prefix) {
			n++
		}
	}
	return n
}

const testVideoID = "dQw4w9WgXcQ"

// captionsJSONFixture has en (manual, translatable), fr (generated) and a
// generated en track shadowed by the manual one.
const captionsJSONFixture = `{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ\u0026lang=en","name":{"simpleText":"English"},"languageCode":"en","isTranslatable":true},` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ\u0026lang=fr\u0026kind=asr","name":{"runs":[{"text":"French "},{"text":"(auto-generated)"}]},"languageCode":"fr","kind":"asr","isTranslatable":true},` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ\u0026lang=en\u0026kind=asr","name":{"simpleText":"English (auto-generated)"},"languageCode":"en","kind":"asr","isTranslatable":true}` +
	`],"translationLanguages":[` +
	`{"languageCode":"de","languageName":{"simpleText":"German"}},` +
	`{"languageCode":"es","languageName":{"simpleText":"Spanish"}}` +
	`]}}`

func watchPage(captions string) string {
	return `<html><head><title>Video</title></head><body><script>var ytInitialPlayerResponse = {` +
		`"playabilityStatus":{"status":"OK"},` +
		`"captions":` + captions +
		`,"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","lengthSeconds":"212",` +
		`"keywords":["rick","astley"],"channelId":"UCuAXFkgsw1L7xaCfnd5JJOw","shortDescription":"The official video",` +
		`"thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg","width":120,"height":90},` +
		`{"url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg","width":1280,"height":720}]},` +
		`"viewCount":"1500000000","author":"Rick Astley"},"annotations":[]};</script></body></html>`
}

const consentPage = `<html><body><form action="https://consent.youtube.com/s" method="POST">` +
	`<input type="hidden" name="gl" value="DE"><input type="hidden" name="v" value="cb.20230101-00-p0.en+FX+123">` +
	`</form></body></html>`

const timedTextFixture = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.54">Hey there</text>` +
	`<text start="2.04" dur="3.1">how are &amp;amp; you &amp;#39;doing&amp;#39;</text>` +
	`<text start="5.5" dur="">&lt;i&gt;fine&lt;/i&gt; &lt;font color=&quot;#fff&quot;&gt;thanks&lt;/font&gt;</text>` +
	`<text start="9" dur="1"></text>` +
	`</transcript>`
