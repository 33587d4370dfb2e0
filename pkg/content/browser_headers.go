package content

import (
	"net/http"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; Feedguard/1.0)"

// addBrowserHeaders sets headers for article page requests
func addBrowserHeaders(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}
