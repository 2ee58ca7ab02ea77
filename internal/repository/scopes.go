// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// PubliclyVisible restricts a posts query to what anonymous readers may see:
// published, in a published category (or none), and already due at now.
func PubliclyVisible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("(posts.category_id IS NULL OR categories.is_published = ?)", true).
			Where("posts.pub_date <= ?", now)
	}
}

// WithCommentCount selects posts.* plus the number of published comments.
func WithCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select(
		"posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_published = ?) AS comment_count",
		true,
	)
}

// Newest orders posts by publish date with id as a tiebreak so pages never overlap.
func Newest(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC").Order("posts.id DESC")
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}

// translate maps GORM errors onto the application error taxonomy.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

// authorCard loads only the public identity columns of a post or comment
// author.
func authorCard(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "first_name", "last_name", "created_at")
}
