// Package store persists curated articles and comments in Postgres.
//
// Both stores expose Available as an explicit capability check. When a
// store is not configured, reads return empty collections and writes
// return an error; nothing panics or aborts the wider request.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// ErrUnavailable is returned by writes when no database is configured.
var ErrUnavailable = errors.New("store: database not configured")

// JST offset used for the count-created-today day boundary.
var jstZone = time.FixedZone("JST", 9*60*60)

// ArticleStore persists curated articles keyed by their stable
// identifier.
type ArticleStore struct {
	db *sqlx.DB
}

// NewArticleStore wraps a database handle. A nil handle produces an
// unavailable store whose reads are empty and writes fail.
func NewArticleStore(db *sql.DB) *ArticleStore {
	s := &ArticleStore{}
	if db != nil {
		s.db = sqlx.NewDb(db, "postgres")
	}
	return s
}

// Available reports whether the store is backed by a live database.
func (s *ArticleStore) Available() bool {
	return s != nil && s.db != nil
}

// RunMigrations ensures the tables exist.
func RunMigrations(db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS articles(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  summary TEXT,
  location TEXT,
  country TEXT,
  country_code TEXT,
  lat DOUBLE PRECISION DEFAULT 0,
  lng DOUBLE PRECISION DEFAULT 0,
  genre TEXT,
  genre_color TEXT,
  paper_style TEXT,
  tape_position TEXT,
  torn_edge TEXT,
  rotation TEXT,
  image TEXT,
  url TEXT,
  published_at TIMESTAMPTZ,
  source_name TEXT,
  content TEXT,
  content_translated TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_articles_created ON articles(created_at);

CREATE TABLE IF NOT EXISTS comments(
  id UUID PRIMARY KEY,
  article_id TEXT NOT NULL,
  author_name TEXT NOT NULL,
  body TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article_id, created_at);
`
	_, err := db.Exec(initSQL)
	return err
}

// Upsert writes an article, replacing the full row when the identifier
// already exists (last write wins). created_at is preserved on
// conflict.
func (s *ArticleStore) Upsert(ctx context.Context, a *models.Article) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now().UTC()
	}

	stmt := `
INSERT INTO articles (
  id, title, summary, location, country, country_code, lat, lng,
  genre, genre_color, paper_style, tape_position, torn_edge, rotation,
  image, url, published_at, source_name, content, content_translated, created_at
) VALUES (
  :id, :title, :summary, :location, :country, :country_code, :lat, :lng,
  :genre, :genre_color, :paper_style, :tape_position, :torn_edge, :rotation,
  :image, :url, :published_at, :source_name, :content, :content_translated, :created_at
)
ON CONFLICT (id) DO UPDATE SET
 title=EXCLUDED.title,
 summary=EXCLUDED.summary,
 location=EXCLUDED.location,
 country=EXCLUDED.country,
 country_code=EXCLUDED.country_code,
 lat=EXCLUDED.lat,
 lng=EXCLUDED.lng,
 genre=EXCLUDED.genre,
 genre_color=EXCLUDED.genre_color,
 paper_style=EXCLUDED.paper_style,
 tape_position=EXCLUDED.tape_position,
 torn_edge=EXCLUDED.torn_edge,
 rotation=EXCLUDED.rotation,
 image=EXCLUDED.image,
 url=EXCLUDED.url,
 published_at=EXCLUDED.published_at,
 source_name=EXCLUDED.source_name,
 content=EXCLUDED.content,
 content_translated=EXCLUDED.content_translated;
`
	if _, err := s.db.NamedExecContext(ctx, stmt, a); err != nil {
		return fmt.Errorf("upsert article id=%s: %w", a.ID, err)
	}
	return nil
}

// List returns up to max articles, newest first by creation time.
func (s *ArticleStore) List(ctx context.Context, max int) ([]models.Article, error) {
	if !s.Available() {
		return []models.Article{}, nil
	}
	if max <= 0 || max > 100 {
		max = 30
	}
	rows := []models.Article{}
	query := `SELECT * FROM articles ORDER BY created_at DESC LIMIT $1`
	if err := s.db.SelectContext(ctx, &rows, query, max); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return rows, nil
}

// GetByID returns the article or nil when absent.
func (s *ArticleStore) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if !s.Available() {
		return nil, nil
	}
	var a models.Article
	err := s.db.GetContext(ctx, &a, `SELECT * FROM articles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article id=%s: %w", id, err)
	}
	return &a, nil
}

// CountCreatedToday counts articles created since the start of the
// current day in JST (UTC+9).
func (s *ArticleStore) CountCreatedToday(ctx context.Context, now time.Time) (int, error) {
	if !s.Available() {
		return 0, nil
	}
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM articles WHERE created_at >= $1`, StartOfDayJST(now))
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	return count, nil
}

// UpdateTranslation writes only the translation field of an article.
func (s *ArticleStore) UpdateTranslation(ctx context.Context, id, translated string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE articles SET content_translated = $1 WHERE id = $2`, translated, id)
	if err != nil {
		return fmt.Errorf("update translation id=%s: %w", id, err)
	}
	return nil
}

// StartOfDayJST returns the UTC instant at which the current JST day
// began.
func StartOfDayJST(now time.Time) time.Time {
	jst := now.In(jstZone)
	start := time.Date(jst.Year(), jst.Month(), jst.Day(), 0, 0, 0, 0, jstZone)
	return start.UTC()
}
