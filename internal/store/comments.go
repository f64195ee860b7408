package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

const (
	maxAuthorNameLen = 100
	maxCommentLen    = 2000
)

// ErrInvalidComment wraps comment validation failures. The wrapped
// message is user-facing.
var ErrInvalidComment = errors.New("invalid comment")

// ValidateComment trims both fields and checks the non-empty and
// length invariants. It returns the trimmed values.
func ValidateComment(authorName, body string) (string, string, error) {
	name := strings.TrimSpace(authorName)
	text := strings.TrimSpace(body)
	if name == "" || text == "" {
		return "", "", fmt.Errorf("%w: 名前とコメントは必須です", ErrInvalidComment)
	}
	if utf8.RuneCountInString(name) > maxAuthorNameLen {
		return "", "", fmt.Errorf("%w: 名前は100文字以内で入力してください", ErrInvalidComment)
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return "", "", fmt.Errorf("%w: コメントは2000文字以内で入力してください", ErrInvalidComment)
	}
	return name, text, nil
}

// CommentStore persists user comments keyed by article identifier.
type CommentStore struct {
	db *sqlx.DB
}

func NewCommentStore(db *sql.DB) *CommentStore {
	s := &CommentStore{}
	if db != nil {
		s.db = sqlx.NewDb(db, "postgres")
	}
	return s
}

// Available reports whether the store is backed by a live database.
func (s *CommentStore) Available() bool {
	return s != nil && s.db != nil
}

// Insert validates and stores a new comment. Comments are immutable
// once created.
func (s *CommentStore) Insert(ctx context.Context, articleID, authorName, body string) (*models.Comment, error) {
	name, text, err := ValidateComment(authorName, body)
	if err != nil {
		return nil, err
	}
	if !s.Available() {
		return nil, ErrUnavailable
	}

	c := models.Comment{
		ID:         uuid.New().String(),
		ArticleID:  articleID,
		AuthorName: name,
		Body:       text,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = s.db.NamedExecContext(ctx, `
INSERT INTO comments (id, article_id, author_name, body, created_at)
VALUES (:id, :article_id, :author_name, :body, :created_at)`, c)
	if err != nil {
		return nil, fmt.Errorf("insert comment article=%s: %w", articleID, err)
	}
	return &c, nil
}

// ListByArticle returns the article's comments ordered by creation
// time ascending.
func (s *CommentStore) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	if !s.Available() {
		return []models.Comment{}, nil
	}
	rows := []models.Comment{}
	query := `
SELECT id, article_id, author_name, body, created_at
FROM comments
WHERE article_id = $1
ORDER BY created_at ASC`
	if err := s.db.SelectContext(ctx, &rows, query, articleID); err != nil {
		return nil, fmt.Errorf("list comments article=%s: %w", articleID, err)
	}
	return rows, nil
}
