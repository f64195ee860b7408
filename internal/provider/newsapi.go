package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// Countries and categories crossed by the headlines fetcher. Business
// and general are deliberately absent: both skew political.
var (
	newsAPICountries  = []string{"us", "gb", "jp", "au", "de", "fr", "ca", "in"}
	newsAPICategories = []string{"entertainment", "health", "science", "sports"}
)

// NewsAPIFetcher iterates the fixed countries x categories cross
// product against the NewsAPI top-headlines endpoint, a small page per
// combination, with the same dedupe and exclusion heuristic as the
// search fetcher.
type NewsAPIFetcher struct {
	key     string
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
}

func NewNewsAPIFetcher(key, baseURL string, hc *http.Client, logger *slog.Logger) *NewsAPIFetcher {
	if baseURL == "" {
		baseURL = newsAPIBaseURL
	}
	if hc == nil {
		hc = defaultHTTPClient()
	}
	return &NewsAPIFetcher{key: key, baseURL: baseURL, hc: hc, logger: logger}
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type newsAPIResponse struct {
	Articles []newsAPIArticle `json:"articles"`
}

func (f *NewsAPIFetcher) Fetch(ctx context.Context, max int) ([]models.RawArticle, error) {
	var out []models.RawArticle
	var firstErr error
	seen := map[string]bool{}

	for _, country := range newsAPICountries {
		for _, category := range newsAPICategories {
			u := fmt.Sprintf("%s/top-headlines?country=%s&category=%s&pageSize=5&apiKey=%s",
				f.baseURL, country, category, f.key)

			var resp newsAPIResponse
			if err := f.getJSON(ctx, u, &resp); err != nil {
				f.logger.Warn("newsapi request failed", "country", country, "category", category, "err", err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			for _, a := range resp.Articles {
				if a.URL == "" || seen[a.URL] {
					continue
				}
				raw := mapNewsAPIArticle(a)
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
		if len(out) >= max {
			break
		}
	}

	if len(out) > max {
		out = out[:max]
	}
	return out, firstErr
}

func (f *NewsAPIFetcher) getJSON(ctx context.Context, u string, dst any) error {
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
		return fmt.Errorf("newsapi status %d: %s", resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func mapNewsAPIArticle(a newsAPIArticle) models.RawArticle {
	published, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		published = time.Now().UTC()
	}
	return models.RawArticle{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		Image:       a.URLToImage,
		PublishedAt: published,
		SourceName:  a.Source.Name,
	}
}
