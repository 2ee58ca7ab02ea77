package repository

import (
	"context"
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// FeedFilter selects the posts of one feed. Zero values mean "no restriction"
// except Now, which is required whenever Public is set.
type FeedFilter struct {
	Public     bool
	Now        time.Time
	CategoryID uint
	AuthorID   uint
}

// AdminPostFilter narrows the administrative post listing.
type AdminPostFilter struct {
	IsPublished *bool
	CategoryID  uint
	LocationID  uint
	AuthorID    uint
	Query       string
}

// PostRepository defines interface for post operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	CountFeed(ctx context.Context, filter FeedFilter) (int64, error)
	ListFeed(ctx context.Context, filter FeedFilter, limit, offset int) ([]*models.Post, error)
	CountAdmin(ctx context.Context, filter AdminPostFilter) (int64, error)
	ListAdmin(ctx context.Context, filter AdminPostFilter, limit, offset int) ([]*models.Post, error)
	SetPublished(ctx context.Context, id uint, published bool) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Category", "Location").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(WithCommentCount).
		Preload("Author", authorCard).
		Preload("Category").
		Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Select("title", "text", "pub_date", "is_published", "category_id", "location_id", "updated_at").
		Updates(post).Error
	return translate(err, "Post", post.ID)
}

// Delete removes the post and exactly its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
}

func (r *postRepository) feedQuery(ctx context.Context, filter FeedFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.Public {
		q = q.Scopes(PubliclyVisible(filter.Now))
	}
	if filter.CategoryID != 0 {
		q = q.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	return q
}

func (r *postRepository) CountFeed(ctx context.Context, filter FeedFilter) (int64, error) {
	var total int64
	if err := r.feedQuery(ctx, filter).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *postRepository) ListFeed(ctx context.Context, filter FeedFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.feedQuery(ctx, filter).
		Scopes(WithCommentCount, Newest, paginate(limit, offset)).
		Preload("Author", authorCard).
		Preload("Category").
		Preload("Location").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) adminQuery(ctx context.Context, filter AdminPostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.IsPublished != nil {
		q = q.Where("posts.is_published = ?", *filter.IsPublished)
	}
	if filter.CategoryID != 0 {
		q = q.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.LocationID != 0 {
		q = q.Where("posts.location_id = ?", filter.LocationID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		q = q.Where("(LOWER(posts.title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(posts.text) LIKE LOWER(?) ESCAPE '\\')", pattern, pattern)
	}
	return q
}

func (r *postRepository) CountAdmin(ctx context.Context, filter AdminPostFilter) (int64, error) {
	var total int64
	if err := r.adminQuery(ctx, filter).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *postRepository) ListAdmin(ctx context.Context, filter AdminPostFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.adminQuery(ctx, filter).
		Scopes(WithCommentCount, Newest, paginate(limit, offset)).
		Preload("Author", authorCard).
		Preload("Category").
		Preload("Location").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("is_published", published)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}
