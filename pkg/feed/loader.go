package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
)

const maxFeedSize = 20 * 1024 * 1024

// Loader fetches and parses RSS/Atom feeds
type Loader struct {
	client    *http.Client
	userAgent string
}

// NewLoader creates a new feed loader
func NewLoader(timeout time.Duration, userAgent string) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Load fetches a feed from the given URL and parses it.
// Feeds which fail to parse or have no entries are rejected.
func (l *Loader) Load(ctx context.Context, feedURL string) (*Feed, error) {
	feedURL = strings.TrimSpace(feedURL)

	raw, err := l.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}

	f, err := Parse(feedURL, raw)
	if err != nil {
		return nil, fmt.Errorf("load feed %s: %w", feedURL, err)
	}

	lgr.Printf("[DEBUG] loaded feed %s, %d entries", feedURL, f.Len())
	return f, nil
}

// fetch retrieves raw content from a URL
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}
	addBrowserHeaders(req)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
