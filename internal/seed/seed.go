package seed

import (
	"fmt"

	"blogicum/internal/middleware"
	"blogicum/internal/models"

	"gorm.io/gorm"
)

// Result summarizes a seeding run.
type Result struct {
	Categories int
	Locations  int
	Users      int
	Posts      int
	Comments   int
}

// Seeder orchestrates a full demo population.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder for db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// ClearAll removes every post, comment and user plus the catalog.
func (s *Seeder) ClearAll() error {
	tx := s.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.Category{}, &models.Location{}, &models.User{}} {
		if err := tx.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	middleware.Logger.Info("seed data cleared")
	return nil
}

// Run seeds the catalog, then users, posts and comments.
func (s *Seeder) Run() (*Result, error) {
	categories, locations, err := SeedCatalog(s.db)
	if err != nil {
		return nil, err
	}
	res := &Result{Categories: len(categories), Locations: len(locations)}

	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		u, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	res.Users = len(users)
	if len(users) == 0 {
		return res, nil
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.factory.faker.Number(0, len(users)-1)]
		posts = append(posts, s.factory.BuildPost(author, categories, locations))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	res.Posts = len(posts)

	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < s.opts.CommentsPerPost; i++ {
			author := users[s.factory.faker.Number(0, len(users)-1)]
			comments = append(comments, s.factory.BuildComment(author, post))
		}
	}
	if err := s.factory.CreateCommentsBatch(comments); err != nil {
		return nil, fmt.Errorf("create comments: %w", err)
	}
	res.Comments = len(comments)

	middleware.Logger.Info("seeding completed",
		"categories", res.Categories,
		"locations", res.Locations,
		"users", res.Users,
		"posts", res.Posts,
		"comments", res.Comments,
	)
	return res, nil
}
