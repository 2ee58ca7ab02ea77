package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Text: "Content", AuthorID: 1, PubDate: testNow, IsPublished: true}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT posts.*, (SELECT COUNT(*) FROM comments`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 9)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_PublicFeedVisibility(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	travel := mustCategory(t, db, "travel", true)
	hidden := mustCategory(t, db, "hidden", false)

	visible := mustPost(t, db, author, "visible")
	inTravel := mustPost(t, db, author, "travel", inCategory(travel))
	mustPost(t, db, author, "draft", unpublished())
	mustPost(t, db, author, "future", at(testNow.Add(time.Hour)))
	mustPost(t, db, author, "hidden category", inCategory(hidden))
	dueNow := mustPost(t, db, author, "due now", at(testNow))

	filter := FeedFilter{Public: true, Now: testNow}
	total, err := repo.CountFeed(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	posts, err := repo.ListFeed(ctx, filter, models.PageSize, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{visible.ID, inTravel.ID, dueNow.ID}, postIDs(posts))

	// Hiding the category removes its posts from the public feed.
	require.NoError(t, db.Model(travel).Update("is_published", false).Error)
	posts, err = repo.ListFeed(ctx, filter, models.PageSize, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{visible.ID, dueNow.ID}, postIDs(posts))

	catPosts, err := repo.ListFeed(ctx, FeedFilter{Public: true, Now: testNow, CategoryID: travel.ID}, models.PageSize, 0)
	require.NoError(t, err)
	assert.Empty(t, catPosts)
}

func TestPostRepository_AuthorFeedIncludesHidden(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	other := mustUser(t, db, "other")
	hidden := mustCategory(t, db, "hidden", false)

	mustPost(t, db, author, "a")
	mustPost(t, db, author, "b", unpublished())
	mustPost(t, db, author, "c", at(testNow.Add(24*time.Hour)))
	mustPost(t, db, author, "d", inCategory(hidden))
	mustPost(t, db, other, "e")

	own, err := repo.CountFeed(ctx, FeedFilter{AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), own)

	public, err := repo.CountFeed(ctx, FeedFilter{Public: true, Now: testNow, AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), public)
}

func TestPostRepository_FeedOrderingAndPages(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	same := testNow.Add(-time.Hour)
	for i := 0; i < 25; i++ {
		ts := testNow.Add(-time.Duration(i+2) * time.Hour)
		if i%5 == 0 {
			ts = same // ties are broken by id
		}
		mustPost(t, db, author, "p", at(ts))
	}

	filter := FeedFilter{Public: true, Now: testNow}
	seen := map[uint]bool{}
	var last *models.Post
	for page := 0; page < 3; page++ {
		posts, err := repo.ListFeed(ctx, filter, models.PageSize, page*models.PageSize)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(posts), models.PageSize)
		for _, p := range posts {
			assert.False(t, seen[p.ID], "post %d repeated", p.ID)
			seen[p.ID] = true
			if last != nil {
				assert.False(t, p.PubDate.After(last.PubDate))
				if p.PubDate.Equal(last.PubDate) {
					assert.Less(t, p.ID, last.ID)
				}
			}
			last = p
		}
	}
	assert.Len(t, seen, 25)
}

func TestPostRepository_CommentCountCountsPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	post := mustPost(t, db, author, "p")
	mustComment(t, db, author, post, true)
	mustComment(t, db, author, post, true)
	mustComment(t, db, author, post, false)

	posts, err := repo.ListFeed(ctx, FeedFilter{Public: true, Now: testNow}, models.PageSize, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(2), posts[0].CommentCount)
	assert.Equal(t, "author", posts[0].Author.Username)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CommentCount)
}

func TestPostRepository_DeleteRemovesOnlyOwnComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	doomed := mustPost(t, db, author, "doomed")
	kept := mustPost(t, db, author, "kept")
	mustComment(t, db, author, doomed, true)
	mustComment(t, db, author, doomed, false)
	keptComment := mustComment(t, db, author, kept, true)

	require.NoError(t, repo.Delete(ctx, doomed.ID))

	var remaining []models.Comment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keptComment.ID, remaining[0].ID)

	_, err := repo.GetByID(ctx, doomed.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	err = repo.Delete(ctx, doomed.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_UpdateWritesFormFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	travel := mustCategory(t, db, "travel", true)
	post := mustPost(t, db, author, "before", inCategory(travel))

	post.Title = "after"
	post.IsPublished = false
	post.CategoryID = nil
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.False(t, got.IsPublished)
	assert.Nil(t, got.CategoryID)
	assert.Equal(t, author.ID, got.AuthorID)
}

func TestPostRepository_AdminFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	travel := mustCategory(t, db, "travel", true)

	p1 := mustPost(t, db, alice, "Mountain trip", inCategory(travel))
	p2 := mustPost(t, db, bob, "Cooking 100% pasta", unpublished())
	mustPost(t, db, bob, "Other")

	published := false
	posts, err := repo.ListAdmin(ctx, AdminPostFilter{IsPublished: &published}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID}, postIDs(posts))

	posts, err = repo.ListAdmin(ctx, AdminPostFilter{CategoryID: travel.ID}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID}, postIDs(posts))

	posts, err = repo.ListAdmin(ctx, AdminPostFilter{Query: "MOUNTAIN"}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID}, postIDs(posts))

	posts, err = repo.ListAdmin(ctx, AdminPostFilter{Query: "100%"}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{p2.ID}, postIDs(posts))

	total, err := repo.CountAdmin(ctx, AdminPostFilter{AuthorID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPostRepository_SetPublished(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db, "author")
	post := mustPost(t, db, author, "p")

	require.NoError(t, repo.SetPublished(ctx, post.ID, false))
	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	err = repo.SetPublished(ctx, 999, true)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
