package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPopularMovies(t *testing.T) {
	var gotPath, gotAuth, gotPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"page":2,"results":[]}`))
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "test-token", &CacheService{})

	body, err := catalog.PopularMovies(context.Background(), 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":2,"results":[]}`, string(body))
	assert.Equal(t, "/movie/popular", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2", gotPage)
}

func TestCatalogPageFloor(t *testing.T) {
	var gotPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "t", &CacheService{})
	_, err := catalog.TopRatedMovies(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
}

func TestCatalogSearchMovies(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "t", &CacheService{})
	_, err := catalog.SearchMovies(context.Background(), "fight club", 1)
	require.NoError(t, err)
	assert.Equal(t, "fight club", gotQuery)
}

func TestCatalogMovieEndpoints(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "t", &CacheService{})
	ctx := context.Background()

	_, err := catalog.MovieDetails(ctx, "550")
	require.NoError(t, err)
	assert.Equal(t, "/movie/550", gotPath)

	_, err = catalog.MovieCredits(ctx, "550")
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/credits", gotPath)

	_, err = catalog.MovieWatchProviders(ctx, "550")
	require.NoError(t, err)
	assert.Equal(t, "/movie/550/watch/providers", gotPath)

	_, err = catalog.PersonCredits(ctx, "287")
	require.NoError(t, err)
	assert.Equal(t, "/person/287/movie_credits", gotPath)
}

func TestCatalogDiscoverPassthrough(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "t", &CacheService{})
	params := url.Values{"with_genres": {"28,12"}, "sort_by": {"popularity.desc"}}
	_, err := catalog.DiscoverMovies(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "28,12", gotQuery.Get("with_genres"))
	assert.Equal(t, "popularity.desc", gotQuery.Get("sort_by"))
}

func TestCatalogUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	catalog := NewCatalogService(server.URL, "t", &CacheService{})
	_, err := catalog.MovieDetails(context.Background(), "0")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.Status)
	assert.Equal(t, "catalog", upstream.Service)
}
