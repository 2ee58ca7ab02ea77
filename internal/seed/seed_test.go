package seed

import (
	"path/filepath"
	"testing"
	"time"

	"blogicum/internal/database"
	"blogicum/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(c.Categories) == 0 || len(c.Locations) == 0 {
		t.Fatalf("expected a non-empty catalog, got %d categories and %d locations", len(c.Categories), len(c.Locations))
	}
}

func TestParseCatalog_RejectsDuplicateSlug(t *testing.T) {
	_, err := parseCatalog([]byte("categories:\n  - {title: A, slug: a}\n  - {title: B, slug: a}\n"))
	if err == nil {
		t.Fatal("expected duplicate slug to be rejected")
	}
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	db := newSeedDB(t)

	first, _, err := SeedCatalog(db)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, _, err := SeedCatalog(db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var categories, locations int64
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Location{}).Count(&locations)
	catalog, _ := LoadCatalog()
	if int(categories) != len(catalog.Categories) || int(locations) != len(catalog.Locations) {
		t.Fatalf("catalog duplicated: %d categories, %d locations", categories, locations)
	}

	for _, c := range first {
		if c.Slug == "drafts" && c.IsPublished {
			t.Fatal("hidden catalog category was published")
		}
	}
}

func TestSeeder_Run(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{
		NumUsers:        4,
		NumPosts:        30,
		CommentsPerPost: 2,
		SkipBcrypt:      true,
		Seed:            42,
		Now:             func() time.Time { return fixedNow },
	})

	res, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Users != 4 || res.Posts != 30 || res.Comments != 60 {
		t.Fatalf("unexpected result: %+v", res)
	}

	var posts []models.Post
	if err := db.Find(&posts).Error; err != nil {
		t.Fatalf("load posts: %v", err)
	}
	for _, p := range posts {
		if p.AuthorID == 0 {
			t.Fatalf("post %d has no author", p.ID)
		}
		if p.PubDate.After(fixedNow.Add(72*time.Hour)) || p.PubDate.Before(fixedNow.Add(-91*24*time.Hour)) {
			t.Fatalf("post %d pub_date out of range: %v", p.ID, p.PubDate)
		}
	}

	var orphans int64
	db.Model(&models.Comment{}).Where("post_id NOT IN (?)", db.Model(&models.Post{}).Select("id")).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("found %d comments without a post", orphans)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 0 {
		t.Fatalf("expected no users after ClearAll, got %d", users)
	}
}

func TestBuildUser_ValidUsernames(t *testing.T) {
	f := NewFactory(nil, Options{SkipBcrypt: true, Seed: 7})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		u, err := f.BuildUser()
		if err != nil {
			t.Fatalf("BuildUser: %v", err)
		}
		if usernameJunk.MatchString(u.Username) {
			t.Fatalf("username %q has invalid characters", u.Username)
		}
		if seen[u.Username] {
			t.Fatalf("duplicate username %q", u.Username)
		}
		seen[u.Username] = true
	}
}
