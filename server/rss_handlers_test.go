package server

import (
	"context"
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

func TestServer_rssHandler(t *testing.T) {
	loader := &mocks.FeedLoaderMock{
		LoadFunc: func(_ context.Context, feedURL string) (*feed.Feed, error) {
			assert.Equal(t, "https://example.com/rss", feedURL)
			return testFeed(t), nil
		},
	}
	ff := &mocks.FeedFilterMock{
		ApplyFunc: func(_ context.Context, f *feed.Feed, _ filter.Rules) (*feed.Feed, error) {
			return f.Filter(func(e domain.Entry) bool { return e.GUID != "g1" })
		},
	}
	srv := New(testConfig(""), loader, ff, "1.0.0", false)

	req := httptest.NewRequest("GET",
		"/rss?url=https://example.com/rss&exclude_types=politics,+war&include_words=toys&exclude_words=", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<title>Test Feed</title>")
	assert.Contains(t, w.Body.String(), "Best toys of the year")
	assert.NotContains(t, w.Body.String(), "Senate passes budget bill")

	require.Len(t, ff.ApplyCalls(), 1)
	assert.Equal(t, filter.Rules{
		ExcludeTypes: []string{"politics", "war"},
		IncludeWords: []string{"toys"},
	}, ff.ApplyCalls()[0].Rules)
}

func TestServer_rssHandler_DefaultURL(t *testing.T) {
	loader := &mocks.FeedLoaderMock{
		LoadFunc: func(_ context.Context, feedURL string) (*feed.Feed, error) {
			assert.Equal(t, "https://news.ycombinator.com/rss", feedURL)
			return testFeed(t), nil
		},
	}
	ff := &mocks.FeedFilterMock{
		ApplyFunc: func(_ context.Context, f *feed.Feed, rules filter.Rules) (*feed.Feed, error) {
			assert.True(t, rules.Empty())
			return f, nil
		},
	}
	srv := New(testConfig("https://news.ycombinator.com/rss"), loader, ff, "1.0.0", false)

	req := httptest.NewRequest("GET", "/rss", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testRSS, w.Body.String())
	assert.Len(t, loader.LoadCalls(), 1)
}

func TestServer_rssHandler_Errors(t *testing.T) {
	t.Run("no url", func(t *testing.T) {
		loader := &mocks.FeedLoaderMock{}
		srv := New(testConfig(""), loader, &mocks.FeedFilterMock{}, "1.0.0", false)

		req := httptest.NewRequest("GET", "/rss?url=+", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "feed url is required")
		assert.Empty(t, loader.LoadCalls())
	})

	t.Run("load failed", func(t *testing.T) {
		loader := &mocks.FeedLoaderMock{
			LoadFunc: func(context.Context, string) (*feed.Feed, error) {
				return nil, errors.New("unexpected status code: 404")
			},
		}
		ff := &mocks.FeedFilterMock{}
		srv := New(testConfig(""), loader, ff, "1.0.0", false)

		req := httptest.NewRequest("GET", "/rss?url=https://example.com/missing", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "unexpected status code: 404")
		assert.Empty(t, ff.ApplyCalls())
	})

	t.Run("filter failed", func(t *testing.T) {
		loader := &mocks.FeedLoaderMock{
			LoadFunc: func(context.Context, string) (*feed.Feed, error) { return testFeed(t), nil },
		}
		ff := &mocks.FeedFilterMock{
			ApplyFunc: func(context.Context, *feed.Feed, filter.Rules) (*feed.Feed, error) {
				return nil, errors.New("classification retries exhausted")
			},
		}
		srv := New(testConfig(""), loader, ff, "1.0.0", false)

		req := httptest.NewRequest("GET", "/rss?url=https://example.com/rss&include_types=war", http.NoBody)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "retries exhausted")
	})
}
