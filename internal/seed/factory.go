// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"blogicum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated user.
const DefaultPassword = "Blogicum!2024"

var usernameJunk = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Options configures a seeding run.
type Options struct {
	NumUsers        int
	NumPosts        int
	CommentsPerPost int
	// MaxDays bounds how far back publication dates are spread.
	MaxDays int
	// SkipBcrypt stores DefaultPassword unhashed. Those users cannot log in.
	SkipBcrypt bool
	// Seed makes generated content reproducible when non-zero.
	Seed int64
	Now  func() time.Time
}

// Factory builds domain records with realistic fake content and persists them.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	hash  string
	seq   int
}

// NewFactory creates a Factory bound to db.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(opts.Seed)}
}

func (f *Factory) passwordHash() (string, error) {
	if f.opts.SkipBcrypt {
		return DefaultPassword, nil
	}
	if f.hash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		f.hash = string(hashed)
	}
	return f.hash, nil
}

// BuildUser returns an unsaved user with a unique, valid username.
func (f *Factory) BuildUser(overrides ...func(*models.User)) (*models.User, error) {
	password, err := f.passwordHash()
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	f.seq++
	base := strings.ToLower(usernameJunk.ReplaceAllString(f.faker.Username(), ""))
	if len(base) < 3 {
		base = "reader"
	}
	if len(base) > 20 {
		base = base[:20]
	}
	username := fmt.Sprintf("%s%d", base, f.seq)

	user := &models.User{
		Username:  username,
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
		Email:     username + "@example.com",
		Password:  password,
	}
	for _, override := range overrides {
		override(user)
	}
	return user, nil
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.BuildUser(overrides...)
	if err != nil {
		return nil, err
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post by author. Roughly one post in ten is a
// draft and one in ten is scheduled for the future, so seeded feeds exercise
// visibility.
func (f *Factory) BuildPost(author *models.User, categories []models.Category, locations []models.Location, overrides ...func(*models.Post)) *models.Post {
	now := f.opts.Now()
	pubDate := now.Add(-time.Duration(f.faker.Number(1, f.opts.MaxDays*24*60)) * time.Minute)

	post := &models.Post{
		Title:       strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 7)), "."),
		Text:        f.faker.Paragraph(f.faker.Number(1, 3), f.faker.Number(2, 5), 12, "\n\n"),
		PubDate:     pubDate.UTC(),
		IsPublished: true,
		AuthorID:    author.ID,
	}

	switch roll := f.faker.Number(1, 10); roll {
	case 1:
		post.IsPublished = false
	case 2:
		post.PubDate = now.Add(time.Duration(f.faker.Number(1, 72)) * time.Hour).UTC()
	}

	if len(categories) > 0 && f.faker.Number(1, 5) > 1 {
		id := categories[f.faker.Number(0, len(categories)-1)].ID
		post.CategoryID = &id
	}
	if len(locations) > 0 && f.faker.Bool() {
		id := locations[f.faker.Number(0, len(locations)-1)].ID
		post.LocationID = &id
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists posts in a single statement per batch.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("Author", "Category", "Location").CreateInBatches(posts, 100).Error
}

// BuildComment returns an unsaved comment by author on post, dated after it.
func (f *Factory) BuildComment(author *models.User, post *models.Post) *models.Comment {
	created := post.PubDate.Add(time.Duration(f.faker.Number(1, 48*60)) * time.Minute)
	return &models.Comment{
		Text:        f.faker.Sentence(f.faker.Number(4, 20)),
		AuthorID:    author.ID,
		PostID:      post.ID,
		IsPublished: f.faker.Number(1, 20) > 1,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// CreateCommentsBatch persists comments in batches.
func (f *Factory) CreateCommentsBatch(comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	return f.db.Omit("Author", "Post").CreateInBatches(comments, 200).Error
}
