package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NewsItem is one movie-news article from the aggregator.
type NewsItem struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	Image       *string `json:"image,omitempty"`
	Description string  `json:"description"`
}

// NewsService fetches movie news from Reddit's r/movies via the public JSON
// listing endpoint: hot posts with the Article flair, six at a time.
type NewsService struct {
	BaseURL string
	Cache   *CacheService
	client  *http.Client
}

const (
	newsCacheKey = "news:movies"
	newsCacheTTL = 15 * time.Minute
	newsLimit    = 6
)

func NewNewsService(baseURL string, cache *CacheService) *NewsService {
	return &NewsService{
		BaseURL: baseURL,
		Cache:   cache,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				URL       string `json:"url"`
				IsSelf    bool   `json:"is_self"`
				Thumbnail string `json:"thumbnail"`
				Selftext  string `json:"selftext"`
				Score     int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// MovieNews returns recent movie news articles. Callers that want the
// degrade-to-empty behavior handle the error themselves; this method reports
// provider failures as *UpstreamError.
func (s *NewsService) MovieNews(ctx context.Context) ([]NewsItem, error) {
	var cached []NewsItem
	if hit, _ := s.Cache.Get(ctx, newsCacheKey, &cached); hit {
		return cached, nil
	}

	params := url.Values{
		"q":           {`flair:"Article"`},
		"sort":        {"hot"},
		"limit":       {strconv.Itoa(newsLimit)},
		"restrict_sr": {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.BaseURL+"/r/movies/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "CineFiles/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Service: "news", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Service: "news", Status: resp.StatusCode}
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, &UpstreamError{Service: "news", Err: err}
	}

	items := []NewsItem{}
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.IsSelf || post.URL == "" {
			continue
		}

		item := NewsItem{
			Title:       post.Title,
			URL:         post.URL,
			Source:      fmt.Sprintf("r/movies • %s points", groupDigits(post.Score)),
			Description: truncate(post.Selftext, 200),
		}
		if strings.HasPrefix(post.Thumbnail, "http") {
			thumb := post.Thumbnail
			item.Image = &thumb
		}
		items = append(items, item)
	}

	_ = s.Cache.Set(ctx, newsCacheKey, items, newsCacheTTL)
	return items, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// groupDigits formats n with thousands separators ("1,234").
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
