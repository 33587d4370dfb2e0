package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedguard/pkg/domain"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:custom="http://example.com/ns">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<custom:marker keep="yes">publisher data</custom:marker>
	<item>
		<title>News about politics and elections</title>
		<link>http://example.com/politics</link>
		<description>Politics description</description>
		<content:encoded><![CDATA[<p>Full content of the politics article</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>politics-1</guid>
	</item>
	<item>
		<title>Toys became cheaper!</title>
		<link>http://example.com/toys</link>
		<description>Toys description</description>
	</item>
	<item>
		<title>LLM hype is over</title>
		<link>http://example.com/llm</link>
	</item>
</channel>
</rss>`

const testAtom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<subtitle>Test Subtitle</subtitle>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<content type="html">&lt;p&gt;Entry 1 content&lt;/p&gt;</content>
		<author><name>John Doe</name></author>
	</entry>
	<entry>
		<title>Atom Entry 2</title>
		<link href="http://example.com/entry2"/>
		<id>urn:uuid:2</id>
		<updated>2006-01-03T15:04:05Z</updated>
		<summary>Entry 2 summary</summary>
	</entry>
</feed>`

func TestParse_RSS(t *testing.T) {
	f, err := Parse("http://example.com/rss", []byte(testRSS))
	require.NoError(t, err)
	require.Equal(t, 3, f.Len())
	assert.Equal(t, "application/rss+xml", f.ContentType())
	assert.Equal(t, "http://example.com/rss", f.URL())

	entries := f.Entries()
	assert.Equal(t, "News about politics and elections", entries[0].Title)
	assert.Equal(t, "http://example.com/politics", entries[0].Link)
	assert.Equal(t, "politics-1", entries[0].GUID)
	require.Len(t, entries[0].Content, 1)
	assert.Equal(t, "<p>Full content of the politics article</p>", entries[0].Content[0].Value)
	assert.False(t, entries[0].Published.IsZero())

	// no guid, falls back to link
	assert.Equal(t, "http://example.com/toys", entries[1].GUID)
	assert.Empty(t, entries[1].Content)
	assert.Equal(t, "Toys description", entries[1].Description)
}

func TestParse_Atom(t *testing.T) {
	f, err := Parse("http://example.com/atom", []byte(testAtom))
	require.NoError(t, err)
	require.Equal(t, 2, f.Len())
	assert.Equal(t, "application/atom+xml", f.ContentType())

	entries := f.Entries()
	assert.Equal(t, "Atom Entry 1", entries[0].Title)
	assert.Equal(t, "http://example.com/entry1", entries[0].Link)
	assert.Equal(t, "John Doe", entries[0].Author)
	require.Len(t, entries[0].Content, 1)
	assert.Contains(t, entries[0].Content[0].Value, "Entry 1 content")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		errText string
	}{
		{name: "not xml", raw: "not xml", errText: "parse feed"},
		{name: "no entries", raw: `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`,
			wantErr: ErrNoEntries},
		{name: "json feed", raw: `{"version": "https://jsonfeed.org/version/1", "title": "JSON", "items": [{"id": "1", "title": "t"}]}`,
			wantErr: ErrUnsupportedFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("http://example.com", []byte(tt.raw))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestFeed_Info(t *testing.T) {
	f, err := Parse("http://example.com/rss", []byte(testRSS))
	require.NoError(t, err)
	assert.Equal(t, domain.FeedInfo{Title: "Test Feed", Link: "http://example.com", Description: "Test Description",
		EntryCount: 3, URL: "http://example.com/rss"}, f.Info())

	bare := `<rss version="2.0"><channel><item><title>only</title></item></channel></rss>`
	f, err = Parse("http://example.com/bare", []byte(bare))
	require.NoError(t, err)
	info := f.Info()
	assert.Equal(t, "Unknown", info.Title)
	assert.Equal(t, "Unknown", info.Link)
	assert.Equal(t, "No description available", info.Description)
	assert.Equal(t, 1, info.EntryCount)
}

func TestFeed_Filter(t *testing.T) {
	f, err := Parse("http://example.com/rss", []byte(testRSS))
	require.NoError(t, err)

	filtered, err := f.Filter(func(e domain.Entry) bool {
		return !strings.Contains(strings.ToLower(e.Title), "toys")
	})
	require.NoError(t, err)
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "News about politics and elections", filtered.Entries()[0].Title)
	assert.Equal(t, "LLM hype is over", filtered.Entries()[1].Title)

	raw := string(filtered.Raw())
	assert.NotContains(t, raw, "Toys became cheaper!")
	assert.NotContains(t, raw, "Toys description")
	assert.Contains(t, raw, `<custom:marker keep="yes">publisher data</custom:marker>`, "unrelated elements preserved")
	assert.Contains(t, raw, `<content:encoded><![CDATA[<p>Full content of the politics article</p>]]></content:encoded>`)
	assert.True(t, strings.HasPrefix(raw, `<?xml version="1.0" encoding="UTF-8"?>`))

	// source feed is not modified
	assert.Equal(t, 3, f.Len())
	assert.Contains(t, string(f.Raw()), "Toys became cheaper!")
}

func TestFeed_FilterAll(t *testing.T) {
	f, err := Parse("http://example.com/rss", []byte(testRSS))
	require.NoError(t, err)

	filtered, err := f.Filter(func(domain.Entry) bool { return false })
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.Len())
	assert.NotContains(t, string(filtered.Raw()), "<item>")
	assert.Contains(t, string(filtered.Raw()), "<title>Test Feed</title>")
}

func TestFeed_KeepAtom(t *testing.T) {
	f, err := Parse("http://example.com/atom", []byte(testAtom))
	require.NoError(t, err)

	filtered, err := f.Keep([]bool{false, true})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, "Atom Entry 2", filtered.Entries()[0].Title)
	assert.NotContains(t, string(filtered.Raw()), "Atom Entry 1")
	assert.Equal(t, "application/atom+xml", filtered.ContentType())
}

func TestFeed_KeepMaskMismatch(t *testing.T) {
	f, err := Parse("http://example.com/rss", []byte(testRSS))
	require.NoError(t, err)

	_, err = f.Keep([]bool{true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mask size 1 doesn't match 3 entries")
}

func TestEntrySpans(t *testing.T) {
	raw := []byte(`<rss><channel><title>t</title><item><title>a</title></item><item/></channel></rss>`)
	spans, err := entrySpans(raw)
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assert.Equal(t, "<item><title>a</title></item>", string(raw[spans[0].start:spans[0].end]))
	assert.Equal(t, "<item/>", string(raw[spans[1].start:spans[1].end]))
}
