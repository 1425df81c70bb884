package source

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains browser Accept-Language values for italian content
var acceptLanguages = []string{
	"it-IT,it;q=0.9",
	"it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7",
	"it,en-US;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,it;q=0.8",
}

// addPageHeaders adds common browser headers for html pages, with some randomization
func addPageHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	addCommonHeaders(req)

	// modern browsers send Sec-Fetch-* headers
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
}

// addFeedHeaders adds browser-like headers for feed fetching
func addFeedHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	addCommonHeaders(req)
}

func addCommonHeaders(req *http.Request) {
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
	req.Header.Set("Connection", "keep-alive")

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}
}
