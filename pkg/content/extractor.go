package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"
)

const maxPageSize = 5 * 1024 * 1024

// fetchText retrieves the page at urlStr with the given client and extracts its text
func fetchText(ctx context.Context, client *http.Client, urlStr, userAgent string) (string, error) {
	// validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %q", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// decode to utf-8 using declared or sniffed charset
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("detect charset for %s: %w", urlStr, err)
	}
	page, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", urlStr, err)
	}

	return pageText(page, parsedURL), nil
}

// pageText extracts main article text with trafilatura, falls back to plain html-to-text
// if nothing was extracted
func pageText(page []byte, pageURL *url.URL) string {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}

	result, err := trafilatura.Extract(bytes.NewReader(page), opts)
	if err == nil && result != nil {
		if text := strings.Join(strings.Fields(result.ContentText), " "); text != "" {
			return text
		}
	}
	return HTMLToText(string(page))
}
