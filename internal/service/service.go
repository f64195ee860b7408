// Package service composes fetchers, the curation filter, geolocation,
// and the stores into the happy-news ingestion pipeline.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YusukeAsk/016-worldhappynews/internal/geo"
	"github.com/YusukeAsk/016-worldhappynews/internal/llm"
	"github.com/YusukeAsk/016-worldhappynews/internal/newsid"
	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// Fetcher pulls raw articles from the selected upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, max int) ([]models.RawArticle, error)
}

// Curator classifies and summarizes a batch of raw articles.
type Curator interface {
	Curate(ctx context.Context, batch []llm.BatchItem) []llm.Decision
}

// Translator produces a full localized translation of an article body.
type Translator interface {
	Translate(ctx context.Context, title, body string) string
}

// ArticleStore is the persistence surface the pipeline needs.
type ArticleStore interface {
	Available() bool
	Upsert(ctx context.Context, a *models.Article) error
	List(ctx context.Context, max int) ([]models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	CountCreatedToday(ctx context.Context, now time.Time) (int, error)
	UpdateTranslation(ctx context.Context, id, translated string) error
}

const listCacheTTL = time.Hour

// Service is the ingestion orchestrator.
type Service struct {
	fetcher    Fetcher
	curator    Curator
	translator Translator
	articles   ArticleStore
	rdb        *redis.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(fetcher Fetcher, curator Curator, translator Translator, articles ArticleStore, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		curator:    curator,
		translator: translator,
		articles:   articles,
		rdb:        rdb,
		logger:     logger,
		now:        time.Now,
	}
}

// GetHappyNews runs the standard pipeline: fetch, curate in one batch,
// geolocate, and assemble. Only accepted articles are returned;
// rejects are dropped silently. Results are served from the redis list
// cache when one is configured.
func (s *Service) GetHappyNews(ctx context.Context, max int) ([]models.Article, error) {
	if cached, ok := s.cacheGet(ctx, max); ok {
		return cached, nil
	}
	out, err := s.buildHappyNews(ctx, max)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, max, out)
	return out, nil
}

func (s *Service) buildHappyNews(ctx context.Context, max int) ([]models.Article, error) {
	raw, err := s.fetcher.Fetch(ctx, max)
	if err != nil {
		// fail open: keep whatever the fetcher collected
		s.logger.Warn("fetch incomplete", "collected", len(raw), "err", err)
	}
	if len(raw) == 0 {
		return []models.Article{}, nil
	}

	batch := make([]llm.BatchItem, len(raw))
	for i, a := range raw {
		batch[i] = llm.BatchItem{Key: newsid.ForURL(a.URL), Article: a}
	}

	decisions := s.curator.Curate(ctx, batch)
	byKey := make(map[string]llm.Decision, len(decisions))
	for _, d := range decisions {
		byKey[d.Key] = d
	}

	out := make([]models.Article, 0, len(raw))
	for i, a := range raw {
		d, ok := byKey[batch[i].Key]
		if !ok || !d.IsHappy {
			continue
		}
		out = append(out, assembleArticle(a, i, batch[i].Key, d.Summary, d.Genre))
	}
	return out, nil
}

// GetHappyNewsRelaxed bypasses the curation filter entirely: every
// fetched article (already politics/economy-filtered) is accepted.
// Used only as the daily-minimum-content guarantee.
func (s *Service) GetHappyNewsRelaxed(ctx context.Context, max int) ([]models.Article, error) {
	fetchMax := max
	if fetchMax < 10 {
		fetchMax = 10
	}
	raw, err := s.fetcher.Fetch(ctx, fetchMax)
	if err != nil {
		s.logger.Warn("relaxed fetch incomplete", "collected", len(raw), "err", err)
	}

	out := make([]models.Article, 0, max)
	for i, a := range raw {
		if i >= max {
			break
		}
		summary := a.Description
		if summary == "" {
			summary = a.Title
		}
		out = append(out, assembleArticle(a, i, newsid.ForURL(a.URL), summary, models.GenreKindness))
	}
	return out, nil
}

// GetHappyNewsByID looks an article up by its stable identifier: the
// store first when configured, otherwise a wider standard run searched
// linearly. A body without a stored translation opportunistically
// triggers one.
func (s *Service) GetHappyNewsByID(ctx context.Context, id string) (*models.Article, error) {
	if s.articles.Available() {
		a, err := s.articles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a != nil {
			s.ensureTranslation(ctx, a)
			return a, nil
		}
	}

	list, err := s.GetHappyNews(ctx, 30)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			a := list[i]
			s.ensureTranslation(ctx, &a)
			return &a, nil
		}
	}
	return nil, nil
}

func (s *Service) ensureTranslation(ctx context.Context, a *models.Article) {
	if !a.Content.Valid || a.ContentTranslated.Valid {
		return
	}
	translated := s.translator.Translate(ctx, a.Title, a.Content.Text)
	if translated == "" {
		return
	}
	a.ContentTranslated.Text = translated
	a.ContentTranslated.Valid = true
	if s.articles.Available() {
		if err := s.articles.UpdateTranslation(ctx, a.ID, translated); err != nil {
			s.logger.Warn("store translation failed", "id", a.ID, "err", err)
		}
	}
}

func assembleArticle(raw models.RawArticle, index int, id, summary string, genre models.NewsGenre) models.Article {
	match := geo.InferCountry(raw.SourceName, raw.Title, raw.Description)
	coords := geo.CountryCoords(match.Code, match.Country)
	style := models.GenreStyles[genre]

	image := raw.Image
	if image == "" {
		image = "https://placehold.co/400x300/f5ead0/8b7355?text=World+Happy+News"
	}
	content := raw.Content
	if content == "" {
		content = raw.Description
	}

	a := models.Article{
		ID:           id,
		Title:        raw.Title,
		Summary:      summary,
		Location:     match.Location,
		Country:      coords.Name,
		CountryCode:  match.Code,
		Lat:          coords.Lat,
		Lng:          coords.Lng,
		Genre:        genre,
		GenreColor:   style.Color,
		PaperStyle:   style.PaperStyle,
		TapePosition: models.TapePositions[index%len(models.TapePositions)],
		TornEdge:     models.TornEdges[index%len(models.TornEdges)],
		Rotation:     models.Rotations[index%len(models.Rotations)],
		Image:        image,
		URL:          raw.URL,
		PublishedAt:  raw.PublishedAt,
		SourceName:   raw.SourceName,
	}
	if content != "" {
		a.Content.Text = content
		a.Content.Valid = true
	}
	return a
}

func (s *Service) cacheKey(max int) string {
	return fmt.Sprintf("happynews:list:%d", max)
}

func (s *Service) cacheGet(ctx context.Context, max int) ([]models.Article, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, s.cacheKey(max)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("list cache read failed", "err", err)
		}
		return nil, false
	}
	var out []models.Article
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *Service) cacheSet(ctx context.Context, max int, list []models.Article) {
	if s.rdb == nil || len(list) == 0 {
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(max), raw, listCacheTTL).Err(); err != nil {
		s.logger.Warn("list cache write failed", "err", err)
	}
}
