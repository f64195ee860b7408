package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

const gnewsBaseURL = "https://gnews.io/api/v4"

// Negative terms appended to every search query. GNews supports
// boolean exclusion with a leading minus.
const excludeSuffix = " -politics -election -economy -stock -recession -war -trump -biden -congress -senate"

// Curated queries biased toward local, community, heartwarming stories.
var gnewsQueries = []string{
	"local news community good news" + excludeSuffix,
	"regional newspaper heartwarming" + excludeSuffix,
	"small town volunteer kindness" + excludeSuffix,
	"community volunteer animal rescue" + excludeSuffix,
	"local business charity neighborhood" + excludeSuffix,
	"good news today uplifting" + excludeSuffix,
}

// GNewsFetcher issues the curated search queries against the GNews API,
// deduplicating by URL across queries and applying the exclusion
// heuristic inline.
type GNewsFetcher struct {
	key     string
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

func NewGNewsFetcher(key, baseURL string, hc *http.Client, logger *slog.Logger) *GNewsFetcher {
	if baseURL == "" {
		baseURL = gnewsBaseURL
	}
	if hc == nil {
		hc = defaultHTTPClient()
	}
	return &GNewsFetcher{key: key, baseURL: baseURL, hc: hc, logger: logger}
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

// Fetch runs each query in order until max articles are collected or
// all queries are exhausted. Per-query failures are logged and the
// remaining queries still run.
func (f *GNewsFetcher) Fetch(ctx context.Context, max int) ([]models.RawArticle, error) {
	perQuery := max
	if perQuery > 10 {
		perQuery = 10
	}

	var out []models.RawArticle
	var firstErr error
	seen := map[string]bool{}

	for _, q := range gnewsQueries {
		u := fmt.Sprintf("%s/search?q=%s&lang=en&max=%d&apikey=%s",
			f.baseURL, url.QueryEscape(q), perQuery, url.QueryEscape(f.key))

		var resp gnewsResponse
		if err := f.getJSON(ctx, u, &resp); err != nil {
			f.logger.Warn("gnews query failed", "query", q, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		for _, a := range resp.Articles {
			if a.URL == "" || seen[a.URL] || (a.Title == "" && a.Description == "") {
				continue
			}
			raw := mapGNewsArticle(a)
			if IsLikelyPoliticsOrEconomy(raw) {
				continue
			}
			seen[a.URL] = true
			out = append(out, raw)
		}
		if len(out) >= max {
			break
		}
	}

	if len(out) > max {
		out = out[:max]
	}
	return out, firstErr
}

func (f *GNewsFetcher) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := f.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("gnews status %d: %s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func mapGNewsArticle(a gnewsArticle) models.RawArticle {
	published, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		published = time.Now().UTC()
	}
	return models.RawArticle{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		Image:       a.Image,
		PublishedAt: published,
		SourceName:  a.Source.Name,
	}
}
