package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/feedguard/pkg/domain"
)

var (
	// ErrNoEntries returned when a loaded feed has no entries
	ErrNoEntries = errors.New("feed has no entries")
	// ErrUnsupportedFeed returned for feeds which can't be rewritten, i.e. json feeds
	ErrUnsupportedFeed = errors.New("unsupported feed type")
)

// Feed is a parsed RSS/Atom feed which keeps the original bytes.
// Filtering never re-renders the document, it cuts removed entries out of the raw bytes
// so everything else stays exactly as the publisher wrote it.
type Feed struct {
	url     string
	raw     []byte
	parsed  *gofeed.Feed
	entries []domain.Entry
	spans   []span // byte range of each entry element, aligned with entries
}

type span struct {
	start, end int64
}

// Parse makes Feed from raw feed bytes. The url is informational only.
func Parse(feedURL string, raw []byte) (*Feed, error) {
	f, err := parse(feedURL, raw)
	if err != nil {
		return nil, err
	}
	if len(f.entries) == 0 {
		return nil, ErrNoEntries
	}
	return f, nil
}

func parse(feedURL string, raw []byte) (*Feed, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if parsed.FeedType == "json" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFeed, parsed.FeedType)
	}

	spans, err := entrySpans(raw)
	if err != nil {
		return nil, fmt.Errorf("locate feed entries: %w", err)
	}
	if len(spans) != len(parsed.Items) {
		return nil, fmt.Errorf("locate feed entries: found %d elements for %d entries", len(spans), len(parsed.Items))
	}

	res := &Feed{
		url:     feedURL,
		raw:     raw,
		parsed:  parsed,
		spans:   spans,
		entries: make([]domain.Entry, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		res.entries = append(res.entries, toEntry(parsed.Title, item))
	}
	return res, nil
}

// Entries returns feed entries in document order
func (f *Feed) Entries() []domain.Entry {
	res := make([]domain.Entry, len(f.entries))
	copy(res, f.entries)
	return res
}

// Len returns number of entries
func (f *Feed) Len() int {
	return len(f.entries)
}

// Raw returns feed bytes
func (f *Feed) Raw() []byte {
	return f.raw
}

// URL returns the url feed was loaded from
func (f *Feed) URL() string {
	return f.url
}

// ContentType returns mime type suitable for serving the feed
func (f *Feed) ContentType() string {
	if f.parsed.FeedType == "atom" {
		return "application/atom+xml"
	}
	return "application/rss+xml"
}

// Info returns main information about the feed
func (f *Feed) Info() domain.FeedInfo {
	info := domain.FeedInfo{
		Title:       f.parsed.Title,
		Link:        f.parsed.Link,
		Description: f.parsed.Description,
		EntryCount:  len(f.entries),
		URL:         f.url,
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Link == "" {
		info.Link = "Unknown"
	}
	if info.Description == "" {
		info.Description = "No description available"
	}
	return info
}

// Filter returns a new feed with entries for which keep returned true
func (f *Feed) Filter(keep func(entry domain.Entry) bool) (*Feed, error) {
	mask := make([]bool, len(f.entries))
	for i, e := range f.entries {
		mask[i] = keep(e)
	}
	return f.Keep(mask)
}

// Keep returns a new feed with entries whose mask value is true. The mask is aligned with Entries.
// The result may have no entries.
func (f *Feed) Keep(mask []bool) (*Feed, error) {
	if len(mask) != len(f.entries) {
		return nil, fmt.Errorf("mask size %d doesn't match %d entries", len(mask), len(f.entries))
	}

	var buf bytes.Buffer
	buf.Grow(len(f.raw))
	pos := int64(0)
	for i, sp := range f.spans {
		if mask[i] {
			continue
		}
		// drop the indentation in front of removed element too
		start := sp.start
		for start > pos && isSpace(f.raw[start-1]) {
			start--
		}
		buf.Write(f.raw[pos:start])
		pos = sp.end
	}
	buf.Write(f.raw[pos:])

	res, err := parse(f.url, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rewrite feed: %w", err)
	}
	return res, nil
}

// entrySpans finds byte ranges of item/entry elements which are direct children
// of rss channel, rdf root or atom feed
func entrySpans(raw []byte) ([]span, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	// offsets must point into raw bytes, so no charset conversion here. Only element names matter.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }

	var res []span
	var stack []string
	start, depth := int64(-1), 0
	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if start < 0 && (name == "item" || name == "entry") && len(stack) > 0 && isContainer(stack[len(stack)-1]) {
				start, depth = offset, len(stack)
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if start >= 0 && len(stack) == depth {
				res = append(res, span{start: start, end: dec.InputOffset()})
				start = -1
			}
		}
	}
	return res, nil
}

func isContainer(name string) bool {
	return name == "channel" || name == "rdf" || name == "feed"
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func toEntry(feedTitle string, item *gofeed.Item) domain.Entry {
	entry := domain.Entry{
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
	}

	if item.Content != "" {
		entry.Content = []domain.Content{{Value: item.Content, Type: "text/html"}}
	}

	// set GUID
	switch {
	case item.GUID != "":
		entry.GUID = item.GUID
	case item.Link != "":
		entry.GUID = item.Link
	default:
		entry.GUID = fmt.Sprintf("%s-%s", feedTitle, item.Title)
	}

	if item.Author != nil {
		entry.Author = item.Author.Name
	}

	if item.PublishedParsed != nil {
		entry.Published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		entry.Published = *item.UpdatedParsed
	}

	return entry
}
