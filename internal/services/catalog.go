package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// UpstreamError wraps a failure talking to an external provider (catalog or
// news). Handlers surface it as a 502 with a generic message.
type UpstreamError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s upstream error: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s upstream error: status %d", e.Service, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// CatalogService is a pass-through client for the TMDB v3 API. Responses are
// returned as raw JSON and never reshaped; browse listings are cached in
// Redis so the catalog isn't hammered on every homepage load.
type CatalogService struct {
	BaseURL     string
	BearerToken string
	Cache       *CacheService
	client      *http.Client
}

func NewCatalogService(baseURL, bearerToken string, cache *CacheService) *CatalogService {
	return &CatalogService{
		BaseURL:     baseURL,
		BearerToken: bearerToken,
		Cache:       cache,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CatalogService) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	u := c.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.BearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "catalog", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Service: "catalog", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Service: "catalog", Err: err}
	}
	return json.RawMessage(body), nil
}

// getCached fetches through the Redis cache; upstream failures are never
// cached.
func (c *CatalogService) getCached(ctx context.Context, key, endpoint string, params url.Values) (json.RawMessage, error) {
	var cached json.RawMessage
	if hit, _ := c.Cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	_ = c.Cache.Set(ctx, key, body, DefaultCacheTTL)
	return body, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"language": {"en-US"}, "page": {fmt.Sprint(page)}}
}

func (c *CatalogService) PopularMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.getCached(ctx, fmt.Sprintf("movies:popular:%d", page), "/movie/popular", pageParams(page))
}

func (c *CatalogService) TopRatedMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.getCached(ctx, fmt.Sprintf("movies:top_rated:%d", page), "/movie/top_rated", pageParams(page))
}

func (c *CatalogService) UpcomingMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.getCached(ctx, fmt.Sprintf("movies:upcoming:%d", page), "/movie/upcoming", pageParams(page))
}

func (c *CatalogService) NowPlayingMovies(ctx context.Context, page int) (json.RawMessage, error) {
	return c.getCached(ctx, fmt.Sprintf("movies:now_playing:%d", page), "/movie/now_playing", pageParams(page))
}

func (c *CatalogService) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	params := pageParams(page)
	params.Set("query", query)
	return c.get(ctx, "/search/movie", params)
}

func (c *CatalogService) MovieDetails(ctx context.Context, movieID string) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(movieID), nil)
}

func (c *CatalogService) MovieCredits(ctx context.Context, movieID string) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(movieID)+"/credits", nil)
}

func (c *CatalogService) MovieVideos(ctx context.Context, movieID string) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(movieID)+"/videos", nil)
}

func (c *CatalogService) MovieWatchProviders(ctx context.Context, movieID string) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(movieID)+"/watch/providers", nil)
}

func (c *CatalogService) Genres(ctx context.Context) (json.RawMessage, error) {
	return c.getCached(ctx, "genres:movie", "/genre/movie/list", url.Values{"language": {"en-US"}})
}

func (c *CatalogService) PersonDetails(ctx context.Context, personID string) (json.RawMessage, error) {
	return c.get(ctx, "/person/"+url.PathEscape(personID), nil)
}

func (c *CatalogService) PersonCredits(ctx context.Context, personID string) (json.RawMessage, error) {
	return c.get(ctx, "/person/"+url.PathEscape(personID)+"/movie_credits", nil)
}

// DiscoverMovies passes externally-defined discovery parameters straight
// through; translating them is the caller's concern, not ours.
func (c *CatalogService) DiscoverMovies(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return c.get(ctx, "/discover/movie", params)
}
