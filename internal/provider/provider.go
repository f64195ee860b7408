// Package provider fetches raw articles from upstream news providers.
//
// Fail-open policy: per-request upstream failures are logged and
// skipped; a fetcher returns whatever it collected together with the
// first error it hit, so callers can tell a failed-empty result from a
// filtered-empty one. No fetcher retries a failed call.
package provider

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/YusukeAsk/016-worldhappynews/internal/config"
	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// Fetcher pulls up to max raw articles from one upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, max int) ([]models.RawArticle, error)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// Select picks the fetcher strategy by credential availability: GNews
// first, then NewsAPI, else the static fallback set.
func Select(cfg config.ProviderConfig, logger *slog.Logger) Fetcher {
	if cfg.GNewsAPIKey != "" {
		return NewGNewsFetcher(cfg.GNewsAPIKey, "", nil, logger)
	}
	if cfg.NewsAPIKey != "" {
		return NewNewsAPIFetcher(cfg.NewsAPIKey, "", nil, logger)
	}
	logger.Warn("no provider credential configured, using fallback dataset")
	return FallbackFetcher{}
}
