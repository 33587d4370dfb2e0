package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "simple page", html: "<html><body><h1>Test Title</h1><p>Test paragraph.</p></body></html>",
			want: "Test Title Test paragraph."},
		{name: "empty", html: "", want: ""},
		{name: "malformed", html: "<html><body><h1>Unclosed tag", want: "Unclosed tag"},
		{name: "entities", html: "<p>Tom &amp; Jerry &lt;3</p>", want: "Tom & Jerry <3"},
		{name: "whitespace collapsed", html: "<div>\n\t  a \n\n b  </div>", want: "a b"},
		{name: "script dropped", html: "<p>before</p><script>var x = 1;</script><p>after</p>", want: "before after"},
		{name: "plain text", html: "just text", want: "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.html))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "при", truncate("привет", 3))

	long := strings.Repeat("я", 3000)
	assert.Equal(t, 2000, utf8.RuneCountInString(truncate(long, 2000)))
}
