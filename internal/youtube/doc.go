// Package youtube lists and fetches YouTube caption tracks by scraping the watch page.
//
// Split by responsibility:
//
//	httpclient.go HTTPGetter transports (net/http, go-stealth) and the consent cookie store
//	page.go       watch page download with the consent interstitial retry
//	captions.go   captions JSON extraction from page HTML
//	catalog.go    TranscriptList: manual/generated catalog and language resolution
//	transcript.go Transcript fetch, translation and timed-text parsing
//	videoinfo.go  title/description/thumbnail extraction
//	client.go     Client facade, document loading and batch fetching
package youtube
