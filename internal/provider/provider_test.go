package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YusukeAsk/016-worldhappynews/internal/config"
	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsLikelyPoliticsOrEconomyRejectsElection(t *testing.T) {
	a := models.RawArticle{Title: "Mayor wins election in landslide"}
	assert.True(t, IsLikelyPoliticsOrEconomy(a))
}

func TestIsLikelyPoliticsOrEconomyAcceptsVolunteer(t *testing.T) {
	a := models.RawArticle{Title: "Volunteer group repaints the town library", SourceName: "Smallville Gazette"}
	assert.False(t, IsLikelyPoliticsOrEconomy(a))
}

func TestIsLikelyPoliticsOrEconomyRejectsWireService(t *testing.T) {
	a := models.RawArticle{Title: "A lovely story", SourceName: "Reuters"}
	assert.True(t, IsLikelyPoliticsOrEconomy(a))
}

func TestGNewsFetchDedupesAndFilters(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[
			{"title":"Dog finds way home","description":"a good dog","url":"https://a.example/1","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Town Paper"}},
			{"title":"Dog finds way home","description":"a good dog","url":"https://a.example/1","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Town Paper"}},
			{"title":"Senate passes budget","description":"","url":"https://a.example/2","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Wire"}},
			{"title":"","description":"","url":"https://a.example/3","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"X"}}
		]}`)
	}))
	defer server.Close()

	f := NewGNewsFetcher("test-key", server.URL, server.Client(), testLogger())
	got, err := f.Fetch(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dog finds way home", got[0].Title)
	assert.Equal(t, "Town Paper", got[0].SourceName)
	// all six queries ran since the target count was never reached
	assert.Equal(t, 6, calls)
}

func TestGNewsFetchStopsAtMax(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"articles":[
			{"title":"Nice story %d","description":"d","url":"https://a.example/c%d-1","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Paper"}},
			{"title":"Nicer story %d","description":"d","url":"https://a.example/c%d-2","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Paper"}}
		]}`, calls, calls, calls, calls)
	}))
	defer server.Close()

	f := NewGNewsFetcher("k", server.URL, server.Client(), testLogger())
	got, err := f.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, calls)
}

func TestGNewsFetchSurvivesQueryFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[{"title":"Kind neighbors","description":"d","url":"https://a.example/ok","publishedAt":"2026-01-02T03:04:05Z","source":{"name":"Paper"}}]}`)
	}))
	defer server.Close()

	f := NewGNewsFetcher("k", server.URL, server.Client(), testLogger())
	got, err := f.Fetch(context.Background(), 10)
	// partial result plus the error from the failed query
	assert.Error(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kind neighbors", got[0].Title)
}

func TestNewsAPIFetchMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/top-headlines", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[{"title":"School choir delights","description":"d","content":"c","url":"https://b.example/1","urlToImage":"https://b.example/img.jpg","publishedAt":"2026-02-03T04:05:06Z","source":{"name":"Daily Sun"}}]}`)
	}))
	defer server.Close()

	f := NewNewsAPIFetcher("k", server.URL, server.Client(), testLogger())
	got, err := f.Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://b.example/img.jpg", got[0].Image)
	assert.Equal(t, "Daily Sun", got[0].SourceName)
	assert.Equal(t, 2026, got[0].PublishedAt.Year())
}

func TestFallbackFetcherShape(t *testing.T) {
	got, err := FallbackFetcher{}.Fetch(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, got, 8)
	for _, a := range got {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Description)
		assert.NotEmpty(t, a.URL)
		assert.NotEmpty(t, a.Image)
		assert.Equal(t, "World Happy News", a.SourceName)
	}
}

func TestFallbackFetcherRespectsMax(t *testing.T) {
	got, err := FallbackFetcher{}.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSelectPrefersGNews(t *testing.T) {
	f := Select(config.ProviderConfig{GNewsAPIKey: "a", NewsAPIKey: "b"}, testLogger())
	_, ok := f.(*GNewsFetcher)
	assert.True(t, ok)
}

func TestSelectFallsBackToNewsAPIThenStatic(t *testing.T) {
	f := Select(config.ProviderConfig{NewsAPIKey: "b"}, testLogger())
	_, ok := f.(*NewsAPIFetcher)
	assert.True(t, ok)

	f = Select(config.ProviderConfig{}, testLogger())
	_, ok = f.(FallbackFetcher)
	assert.True(t, ok)
}
