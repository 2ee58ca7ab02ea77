// Package service holds the application's use cases on top of the repositories.
package service

import (
	"context"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return utcNow
	}
	return now
}

// loadFeedPage counts the feed, clamps the requested page into range and
// loads that page.
func loadFeedPage(ctx context.Context, repo repository.PostRepository, filter repository.FeedFilter, page int) (models.Page[*models.Post], error) {
	total, err := repo.CountFeed(ctx, filter)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}

	page = models.ClampPage(page, total)
	var posts []*models.Post
	if total > 0 {
		posts, err = repo.ListFeed(ctx, filter, models.PageSize, (page-1)*models.PageSize)
		if err != nil {
			return models.Page[*models.Post]{}, err
		}
	}

	return models.NewPage(posts, page, total), nil
}
