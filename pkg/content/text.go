package content

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag and leaves a space in place of it, so adjacent blocks don't glue together
var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// HTMLToText converts html to plain text. Text of separate elements is joined with a single space,
// entities are unescaped and whitespace is collapsed. Script and style bodies are dropped.
func HTMLToText(s string) string {
	if s == "" {
		return ""
	}
	stripped := html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
