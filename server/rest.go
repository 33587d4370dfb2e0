package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedguard/pkg/filter"
)

// checkResult is a classification result of a single entry as returned by check api
type checkResult struct {
	GUID     string   `json:"guid"`
	Title    string   `json:"title"`
	Link     string   `json:"link"`
	Contains bool     `json:"contains"`
	Types    []string `json:"types"`
	Error    string   `json:"error,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// infoHandler returns summary of the feed, GET /api/v1/info?url=...
func (s *Server) infoHandler(w http.ResponseWriter, r *http.Request) {
	feedURL := s.feedURL(r)
	if feedURL == "" {
		RenderError(w, r, errNoURL, http.StatusBadRequest)
		return
	}

	f, err := s.loader.Load(r.Context(), feedURL)
	if err != nil {
		lgr.Printf("[WARN] failed to load feed %s: %v", feedURL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}
	RenderJSON(w, r, http.StatusOK, f.Info())
}

// checkHandler classifies all feed entries against types and returns verdicts,
// GET /api/v1/check?url=...&types=politics,war
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	types := filter.SplitList(r.URL.Query().Get("types"))
	if len(types) == 0 {
		RenderError(w, r, errors.New("types are required"), http.StatusBadRequest)
		return
	}
	feedURL := s.feedURL(r)
	if feedURL == "" {
		RenderError(w, r, errNoURL, http.StatusBadRequest)
		return
	}

	f, err := s.loader.Load(r.Context(), feedURL)
	if err != nil {
		lgr.Printf("[WARN] failed to load feed %s: %v", feedURL, err)
		RenderError(w, r, err, http.StatusBadGateway)
		return
	}

	results := s.filter.Classify(r.Context(), f.Entries(), types)
	resp := make([]checkResult, 0, len(results))
	for _, res := range results {
		cr := checkResult{
			GUID:     res.Entry.GUID,
			Title:    res.Entry.Title,
			Link:     res.Entry.Link,
			Contains: res.Verdict.Contains,
			Types:    res.Verdict.Types,
		}
		if cr.Types == nil {
			cr.Types = []string{}
		}
		if res.Err != nil {
			cr.Error = res.Err.Error()
		}
		resp = append(resp, cr)
	}
	RenderJSON(w, r, http.StatusOK, resp)
}
