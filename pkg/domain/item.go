package domain

import (
	"strings"
	"time"
)

// Entry represents a single item of a syndication feed
type Entry struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     []Content // full content blocks, empty if the feed carries only a summary
	Author      string
	Published   time.Time
}

// Content represents one content block of an entry
type Content struct {
	Value string // html
	Type  string
}

// Verdict is the result of classifying an entry against a set of content types.
// Types holds only requested labels, in request order, and is empty if Contains is false.
type Verdict struct {
	Contains bool     `json:"contains"`
	Types    []string `json:"types"`
}

// Clone returns a copy of the verdict which doesn't share the types slice
func (v Verdict) Clone() Verdict {
	res := Verdict{Contains: v.Contains, Types: make([]string, len(v.Types))}
	copy(res.Types, v.Types)
	return res
}

// HasType checks if the verdict matched the given type, case-insensitive
func (v Verdict) HasType(t string) bool {
	for _, vt := range v.Types {
		if equalFold(vt, t) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
