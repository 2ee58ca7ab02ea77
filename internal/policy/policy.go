// Package policy holds the per-request access rules for posts and comments.
package policy

import (
	"time"

	"blogicum/internal/models"
)

// IsAuthor reports whether an authenticated viewer (non-zero ID) owns a record.
func IsAuthor(authorID, viewerID uint) bool {
	return viewerID != 0 && viewerID == authorID
}

// IsPubliclyVisible is the non-author half of CanViewPost. The post's
// Category must be loaded when CategoryID is set.
func IsPubliclyVisible(post *models.Post, now time.Time) bool {
	if !post.IsPublished {
		return false
	}
	if post.CategoryID != nil && (post.Category == nil || !post.Category.IsPublished) {
		return false
	}
	return !post.PubDate.After(now)
}

// CanViewPost decides whether viewerID (0 for anonymous) may see post at now.
// Authors always see their own posts.
func CanViewPost(post *models.Post, viewerID uint, now time.Time) bool {
	if post == nil {
		return false
	}
	if IsAuthor(post.AuthorID, viewerID) {
		return true
	}
	return IsPubliclyVisible(post, now)
}

// RequireAuthor gates a mutation on resource id. Anonymous and non-owning
// viewers get the same not-found error an absent record produces.
func RequireAuthor(resource string, id, authorID, viewerID uint) error {
	if !IsAuthor(authorID, viewerID) {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
