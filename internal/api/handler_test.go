package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YusukeAsk/016-worldhappynews/internal/service"
	"github.com/YusukeAsk/016-worldhappynews/internal/store"
	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	lastMax  int
	articles []models.Article
	byID     map[string]*models.Article
	cron     service.CronResult
	err      error
}

func (s *stubService) GetHappyNews(_ context.Context, max int) ([]models.Article, error) {
	s.lastMax = max
	return s.articles, s.err
}

func (s *stubService) GetHappyNewsByID(_ context.Context, id string) (*models.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func (s *stubService) RunScheduledFetch(_ context.Context) (service.CronResult, error) {
	if s.err != nil {
		return service.CronResult{}, s.err
	}
	return s.cron, nil
}

type stubComments struct {
	available bool
	listed    []models.Comment
	listErr   error
	inserted  *models.Comment
	insertErr error
}

func (s *stubComments) Available() bool { return s.available }

func (s *stubComments) Insert(_ context.Context, articleID, authorName, body string) (*models.Comment, error) {
	name, text, err := store.ValidateComment(authorName, body)
	if err != nil {
		return nil, err
	}
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.inserted = &models.Comment{
		ID:         "c1",
		ArticleID:  articleID,
		AuthorName: name,
		Body:       text,
		CreatedAt:  time.Date(2026, 8, 30, 1, 2, 3, 0, time.UTC),
	}
	return s.inserted, nil
}

func (s *stubComments) ListByArticle(_ context.Context, _ string) ([]models.Comment, error) {
	return s.listed, s.listErr
}

func newTestRouter(svc NewsService, comments CommentStore, secret string) *gin.Engine {
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	RegisterRoutes(r, NewHandler(svc, comments, secret, logger))
	return r
}

func doRequest(r *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListNewsClampsMax(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc, &stubComments{}, "")

	w := doRequest(r, http.MethodGet, "/api/news?max=50", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, svc.lastMax)

	doRequest(r, http.MethodGet, "/api/news?max=0", nil, nil)
	assert.Equal(t, 1, svc.lastMax)

	doRequest(r, http.MethodGet, "/api/news", nil, nil)
	assert.Equal(t, 12, svc.lastMax)

	doRequest(r, http.MethodGet, "/api/news?max=oops", nil, nil)
	assert.Equal(t, 12, svc.lastMax)
}

func TestListNewsInternalFailure(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}
	r := newTestRouter(svc, &stubComments{}, "")
	w := doRequest(r, http.MethodGet, "/api/news", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetNewsByID(t *testing.T) {
	a := &models.Article{ID: "abc", Title: "Story"}
	svc := &stubService{byID: map[string]*models.Article{"abc": a}}
	r := newTestRouter(svc, &stubComments{}, "")

	w := doRequest(r, http.MethodGet, "/api/news/abc", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Story", got.Title)

	w = doRequest(r, http.MethodGet, "/api/news/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCommentsEmptyWhenUnavailable(t *testing.T) {
	comments := &stubComments{available: false, listed: []models.Comment{}}
	r := newTestRouter(&stubService{}, comments, "")

	w := doRequest(r, http.MethodGet, "/api/news/abc/comments", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListCommentsSwallowsStoreError(t *testing.T) {
	comments := &stubComments{available: true, listErr: errors.New("down")}
	r := newTestRouter(&stubService{}, comments, "")

	w := doRequest(r, http.MethodGet, "/api/news/abc/comments", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateComment(t *testing.T) {
	comments := &stubComments{available: true}
	r := newTestRouter(&stubService{}, comments, "")

	body := []byte(`{"authorName":"Hana","body":"Lovely story"}`)
	w := doRequest(r, http.MethodPost, "/api/news/abc/comments", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "abc", got.ArticleID)
	assert.Equal(t, "Hana", got.AuthorName)
}

func TestCreateCommentValidation(t *testing.T) {
	comments := &stubComments{available: true}
	r := newTestRouter(&stubService{}, comments, "")

	cases := []string{
		`{"authorName":"","body":"text"}`,
		`{"authorName":"name","body":"   "}`,
		fmt.Sprintf(`{"authorName":%q,"body":"text"}`, strings.Repeat("a", 101)),
		fmt.Sprintf(`{"authorName":"name","body":%q}`, strings.Repeat("b", 2001)),
	}
	for _, payload := range cases {
		w := doRequest(r, http.MethodPost, "/api/news/abc/comments", []byte(payload), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, payload)
		assert.Nil(t, comments.inserted)
	}
}

func TestCreateCommentUnavailableStore(t *testing.T) {
	r := newTestRouter(&stubService{}, &stubComments{available: false}, "")
	body := []byte(`{"authorName":"Hana","body":"text"}`)
	w := doRequest(r, http.MethodPost, "/api/news/abc/comments", body, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateCommentInsertFailure(t *testing.T) {
	comments := &stubComments{available: true, insertErr: errors.New("db down")}
	r := newTestRouter(&stubService{}, comments, "")
	body := []byte(`{"authorName":"Hana","body":"text"}`)
	w := doRequest(r, http.MethodPost, "/api/news/abc/comments", body, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCronFetchBearerAuth(t *testing.T) {
	svc := &stubService{cron: service.CronResult{OK: true, Registered: 2, CountToday: 2}}
	r := newTestRouter(svc, &stubComments{}, "topsecret")

	w := doRequest(r, http.MethodGet, "/api/cron/fetch-news", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/cron/fetch-news", nil, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/cron/fetch-news", nil, map[string]string{"Authorization": "Bearer topsecret"})
	require.Equal(t, http.StatusOK, w.Code)
	var got service.CronResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.OK)
	assert.Equal(t, 2, got.Registered)
}

func TestCronFetchNoSecretConfigured(t *testing.T) {
	svc := &stubService{cron: service.CronResult{OK: true}}
	r := newTestRouter(svc, &stubComments{}, "")
	w := doRequest(r, http.MethodGet, "/api/cron/fetch-news", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCronFetchFailure(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}
	r := newTestRouter(svc, &stubComments{}, "")
	w := doRequest(r, http.MethodGet, "/api/cron/fetch-news", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
