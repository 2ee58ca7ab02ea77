package repository

import (
	"path/filepath"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// newTestDB returns a migrated SQLite store private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	))
	return db
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func mustUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func mustCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	c := &models.Category{Title: slug, Slug: slug, Description: slug, IsPublished: published}
	require.NoError(t, db.Create(c).Error)
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

func mustPost(t *testing.T, db *gorm.DB, author *models.User, title string, opts ...postOpt) *models.Post {
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
	require.NoError(t, db.Omit("Author", "Category", "Location").Create(p).Error)
	return p
}

func mustComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, published bool) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: "hi", AuthorID: author.ID, PostID: post.ID, IsPublished: published}
	require.NoError(t, db.Omit("Author", "Post").Create(c).Error)
	return c
}

func postIDs(posts []*models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
