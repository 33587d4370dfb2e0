package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedguard/pkg/filter"
)

var errNoURL = errors.New("feed url is required")

// rssHandler serves upstream feed with entries filtered by query rules, i.e.
// /rss?url=https://example.com/feed&exclude_types=politics,war&exclude_words=crypto
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	feedURL := s.feedURL(r)
	if feedURL == "" {
		RenderError(w, r, errNoURL, http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	rules := filter.Rules{
		IncludeTypes: filter.SplitList(q.Get("include_types")),
		ExcludeTypes: filter.SplitList(q.Get("exclude_types")),
		IncludeWords: filter.SplitList(q.Get("include_words")),
		ExcludeWords: filter.SplitList(q.Get("exclude_words")),
	}

	f, err := s.loader.Load(r.Context(), feedURL)
	if err != nil {
		lgr.Printf("[WARN] failed to load feed %s: %v", feedURL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	filtered, err := s.filter.Apply(r.Context(), f, rules)
	if err != nil {
		lgr.Printf("[ERROR] failed to filter feed %s: %v", feedURL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", filtered.ContentType()+"; charset=utf-8")
	if _, err := w.Write(filtered.Raw()); err != nil {
		lgr.Printf("[WARN] failed to write feed response: %v", err)
	}
}

// feedURL returns url query parameter or the default feed url
func (s *Server) feedURL(r *http.Request) string {
	if u := strings.TrimSpace(r.URL.Query().Get("url")); u != "" {
		return u
	}
	return s.config.GetDefaultFeedURL()
}
