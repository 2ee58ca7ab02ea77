package repository

import (
	"context"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// AdminCommentFilter narrows the administrative comment listing.
type AdminCommentFilter struct {
	IsPublished *bool
	PostID      uint
	AuthorID    uint
}

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListForPost(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	CountAdmin(ctx context.Context, filter AdminCommentFilter) (int64, error)
	ListAdmin(ctx context.Context, filter AdminCommentFilter, limit, offset int) ([]*models.Comment, error)
	SetPublished(ctx context.Context, id uint, published bool) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author", authorCard).First(&comment, id).Error; err != nil {
		return nil, translate(err, "Comment", id)
	}
	return &comment, nil
}

// ListForPost returns the post's published comments plus any the viewer
// wrote, oldest first.
func (r *commentRepository) ListForPost(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).Preload("Author", authorCard).Where("post_id = ?", postID)
	if viewerID != 0 {
		q = q.Where("(is_published = ? OR author_id = ?)", true, viewerID)
	} else {
		q = q.Where("is_published = ?", true)
	}
	if err := q.Order("created_at ASC").Order("id ASC").Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).
		Model(comment).
		Select("text", "updated_at").
		Updates(comment).Error
	return translate(err, "Comment", comment.ID)
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) adminQuery(ctx context.Context, filter AdminCommentFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Comment{})
	if filter.IsPublished != nil {
		q = q.Where("is_published = ?", *filter.IsPublished)
	}
	if filter.PostID != 0 {
		q = q.Where("post_id = ?", filter.PostID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	return q
}

func (r *commentRepository) CountAdmin(ctx context.Context, filter AdminCommentFilter) (int64, error) {
	var total int64
	if err := r.adminQuery(ctx, filter).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *commentRepository) ListAdmin(ctx context.Context, filter AdminCommentFilter, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.adminQuery(ctx, filter).
		Preload("Author", authorCard).
		Order("created_at DESC").
		Order("id DESC").
		Scopes(paginate(limit, offset)).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_published", published)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
