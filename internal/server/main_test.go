package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "server.db")+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      "test-secret-that-is-long-enough-123",
		AllowedOrigins: "http://localhost:3000",
	}
	srv := newServer(cfg, db, rdb, func() time.Time { return testNow })
	return &testEnv{srv: srv, app: srv.NewApp(), db: db, mr: mr}
}

func (e *testEnv) user(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	token, _, err := e.srv.generateToken(u.ID, u.Username)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) category(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	c := &models.Category{Title: slug, Slug: slug, Description: slug, IsPublished: published}
	require.NoError(t, e.db.Create(c).Error)
	return c
}

type postOpt func(*models.Post)

func inCategory(c *models.Category) postOpt {
	return func(p *models.Post) { p.CategoryID = &c.ID }
}

func unpublished() postOpt {
	return func(p *models.Post) { p.IsPublished = false }
}

func at(ts time.Time) postOpt {
	return func(p *models.Post) { p.PubDate = ts }
}

func (e *testEnv) post(t *testing.T, author *models.User, title string, opts ...postOpt) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:       title,
		Text:        title + " body",
		PubDate:     testNow.Add(-time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
	}
	for _, o := range opts {
		o(p)
	}
	require.NoError(t, e.db.Omit("Author", "Category", "Location").Create(p).Error)
	return p
}

func (e *testEnv) comment(t *testing.T, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID, IsPublished: true, CreatedAt: testNow}
	require.NoError(t, e.db.Omit("Author", "Post").Create(c).Error)
	return c
}

// do sends a JSON request, authenticated when token is non-empty.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

// doForm sends a form-encoded request, authenticated when token is non-empty.
func (e *testEnv) doForm(t *testing.T, method, path, form, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type pageBody struct {
	Items       []models.Post `json:"items"`
	Page        int           `json:"page"`
	TotalPages  int           `json:"total_pages"`
	Count       int64         `json:"count"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

func (p pageBody) ids() []uint {
	ids := make([]uint, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
