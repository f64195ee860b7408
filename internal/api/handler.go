package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YusukeAsk/016-worldhappynews/internal/service"
	"github.com/YusukeAsk/016-worldhappynews/internal/store"
	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// NewsService is the slice of the orchestrator the handlers need.
type NewsService interface {
	GetHappyNews(ctx context.Context, max int) ([]models.Article, error)
	GetHappyNewsByID(ctx context.Context, id string) (*models.Article, error)
	RunScheduledFetch(ctx context.Context) (service.CronResult, error)
}

// CommentStore is the comment persistence surface the handlers need.
type CommentStore interface {
	Available() bool
	Insert(ctx context.Context, articleID, authorName, body string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
}

type Handler struct {
	svc        NewsService
	comments   CommentStore
	cronSecret string
	logger     *slog.Logger
}

func NewHandler(svc NewsService, comments CommentStore, cronSecret string, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, comments: comments, cronSecret: cronSecret, logger: logger}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/news", h.ListNews)
		api.GET("/news/:id", h.GetNews)
		api.GET("/news/:id/comments", h.ListComments)
		api.POST("/news/:id/comments", h.CreateComment)
		api.GET("/cron/fetch-news", h.CronFetch)
	}
}

// ListNews: GET /api/news?max=N
func (h *Handler) ListNews(c *gin.Context) {
	max := parseMax(c.DefaultQuery("max", "12"))
	articles, err := h.svc.GetHappyNews(c.Request.Context(), max)
	if err != nil {
		h.logger.Error("list news failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetNews: GET /api/news/:id
// Triggers on-demand translation when the article has a body and no
// stored translation yet.
func (h *Handler) GetNews(c *gin.Context) {
	id := c.Param("id")
	article, err := h.svc.GetHappyNewsByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get news failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch article"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListComments: GET /api/news/:id/comments
// Always answers 200; an unavailable store yields an empty array.
func (h *Handler) ListComments(c *gin.Context) {
	id := c.Param("id")
	comments, err := h.comments.ListByArticle(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("list comments failed", "id", id, "err", err)
		c.JSON(http.StatusOK, []models.Comment{})
		return
	}
	c.JSON(http.StatusOK, comments)
}

type commentRequest struct {
	AuthorName string `json:"authorName"`
	Body       string `json:"body"`
}

// CreateComment: POST /api/news/:id/comments
func (h *Handler) CreateComment(c *gin.Context) {
	id := c.Param("id")
	if !h.comments.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Comments are not available."})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}

	comment, err := h.comments.Insert(c.Request.Context(), id, req.AuthorName, req.Body)
	if err != nil {
		if errors.Is(err, store.ErrInvalidComment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": userMessage(err)})
			return
		}
		h.logger.Error("insert comment failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "コメントの投稿に失敗しました"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// CronFetch: GET /api/cron/fetch-news
// Bearer-token protected when a secret is configured.
func (h *Handler) CronFetch(c *gin.Context) {
	if h.cronSecret != "" {
		auth := c.GetHeader("Authorization")
		if auth != "Bearer "+h.cronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	res, err := h.svc.RunScheduledFetch(c.Request.Context())
	if err != nil {
		h.logger.Error("cron fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cron fetch failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// parseMax clamps the requested article count to [1,30], defaulting to 12.
func parseMax(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 12
	}
	if n < 1 {
		return 1
	}
	if n > 30 {
		return 30
	}
	return n
}

// userMessage strips the ErrInvalidComment prefix, leaving the
// user-facing part.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
