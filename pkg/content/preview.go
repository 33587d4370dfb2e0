package content

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedguard/pkg/domain"
)

const (
	// MaxPreviewLen is the maximum preview length in characters
	MaxPreviewLen = 2000
	// MinInlineLen is the length inline content must exceed to be used without fetching the article
	MinInlineLen = 500
)

// Previewer makes short plain-text previews of feed entries
type Previewer struct {
	userAgent string
}

// NewPreviewer creates a previewer. Empty userAgent means default one.
func NewPreviewer(userAgent string) *Previewer {
	return &Previewer{userAgent: userAgent}
}

// NewHTTPClient makes a client for article fetches
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Preview returns up to MaxPreviewLen characters of entry text. Inline content is used if it is long enough,
// otherwise the entry link is fetched once with the given client. Fetch failures result in empty preview.
func (p *Previewer) Preview(ctx context.Context, entry domain.Entry, client *http.Client) string {
	if len(entry.Content) > 0 {
		text := truncate(HTMLToText(entry.Content[0].Value), MaxPreviewLen)
		if utf8.RuneCountInString(text) > MinInlineLen {
			lgr.Printf("[DEBUG] preview from inline content, %q", entry.Title)
			return text
		}
	}

	if client == nil {
		client = NewHTTPClient(10 * time.Second)
	}
	text, err := fetchText(ctx, client, entry.Link, p.userAgent)
	if err != nil {
		lgr.Printf("[DEBUG] can't fetch article for %q: %v", entry.Title, err)
		return ""
	}
	lgr.Printf("[DEBUG] preview from article page, %s", entry.Link)
	return truncate(text, MaxPreviewLen)
}
