package llm

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/umputun/feedguard/pkg/domain"
)

// VerdictCache is a bounded LRU cache of classification verdicts, safe for concurrent use.
// There is no expiration, an entry published under the same title and link doesn't change.
type VerdictCache struct {
	cache *lru.Cache[string, domain.Verdict]
}

// NewVerdictCache makes a cache holding up to size verdicts
func NewVerdictCache(size int) (*VerdictCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be greater than zero, got %d", size)
	}
	cache, err := lru.New[string, domain.Verdict](size)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	return &VerdictCache{cache: cache}, nil
}

// Get returns cached verdict and marks it as recently used
func (c *VerdictCache) Get(key string) (domain.Verdict, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return domain.Verdict{}, false
	}
	return v.Clone(), true
}

// Put stores verdict, evicting the least recently used one if the cache is full
func (c *VerdictCache) Put(key string, v domain.Verdict) {
	c.cache.Add(key, v.Clone())
}

// Contains checks for the key without updating recency
func (c *VerdictCache) Contains(key string) bool {
	return c.cache.Contains(key)
}

// Len returns number of cached verdicts
func (c *VerdictCache) Len() int {
	return c.cache.Len()
}

// Keys returns cached keys from the oldest to the newest
func (c *VerdictCache) Keys() []string {
	return c.cache.Keys()
}

// cacheKey makes a key from entry identity and requested types, i.e.
// "Some title_http://example.com/1_['politics', 'news']". Order of types matters.
func cacheKey(entry domain.Entry, contentTypes []string) string {
	return entry.Title + "_" + entry.Link + "_" + typesList(contentTypes)
}

// typesList renders types as a bracketed list of quoted strings, ['a', 'b']
func typesList(types []string) string {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = quote(t)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote wraps s in single quotes, or in double quotes if s has single but no double quotes
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.WriteRune(q)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == q:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(q)
	return sb.String()
}
