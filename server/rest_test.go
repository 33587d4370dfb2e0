package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedguard/pkg/domain"
	"github.com/umputun/feedguard/pkg/feed"
	"github.com/umputun/feedguard/pkg/filter"
	"github.com/umputun/feedguard/server/mocks"
)

func TestServer_infoHandler(t *testing.T) {
	loader := &mocks.FeedLoaderMock{
		LoadFunc: func(_ context.Context, feedURL string) (*feed.Feed, error) {
			if feedURL == "https://example.com/broken" {
				return nil, errors.New("parse feed: bad xml")
			}
			return testFeed(t), nil
		},
	}
	srv := New(testConfig("https://example.com/rss"), loader, &mocks.FeedFilterMock{}, "1.0.0", false)

	t.Run("default url", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/info", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var info domain.FeedInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.Equal(t, domain.FeedInfo{
			Title:       "Test Feed",
			Link:        "https://example.com",
			Description: "Test feed description",
			EntryCount:  2,
			URL:         "https://example.com/rss",
		}, info)
	})

	t.Run("broken feed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/info?url=https://example.com/broken", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "bad xml")
	})
}

func TestServer_infoHandler_NoURL(t *testing.T) {
	srv := New(testConfig(""), &mocks.FeedLoaderMock{}, &mocks.FeedFilterMock{}, "1.0.0", false)

	req := httptest.NewRequest("GET", "/api/v1/info", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_checkHandler(t *testing.T) {
	loader := &mocks.FeedLoaderMock{
		LoadFunc: func(context.Context, string) (*feed.Feed, error) { return testFeed(t), nil },
	}
	ff := &mocks.FeedFilterMock{
		ClassifyFunc: func(_ context.Context, entries []domain.Entry, types []string) []filter.Result {
			assert.Equal(t, []string{"politics", "war"}, types)
			require.Len(t, entries, 2)
			return []filter.Result{
				{Entry: entries[0], Verdict: domain.Verdict{Contains: true, Types: []string{"politics"}}},
				{Entry: entries[1], Err: errors.New("model request failed")},
			}
		},
	}
	srv := New(testConfig(""), loader, ff, "1.0.0", false)

	req := httptest.NewRequest("GET", "/api/v1/check?url=https://example.com/rss&types=politics,war", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var results []checkResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Equal(t, []checkResult{
		{GUID: "g1", Title: "Senate passes budget bill", Link: "https://example.com/senate", Contains: true,
			Types: []string{"politics"}},
		{GUID: "g2", Title: "Best toys of the year", Link: "https://example.com/toys", Types: []string{},
			Error: "model request failed"},
	}, results)
}

func TestServer_checkHandler_BadRequest(t *testing.T) {
	loader := &mocks.FeedLoaderMock{}
	srv := New(testConfig(""), loader, &mocks.FeedFilterMock{}, "1.0.0", false)

	tests := []struct {
		name, query string
	}{
		{"no types", "/api/v1/check?url=https://example.com/rss"},
		{"empty types", "/api/v1/check?url=https://example.com/rss&types=,,"},
		{"no url", "/api/v1/check?types=war"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.query, http.NoBody)
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, loader.LoadCalls())
}
