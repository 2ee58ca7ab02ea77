package service

import (
	"context"
	"errors"

	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/policy"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

// ErrNotPostAuthor is returned by UpdatePost when the post exists but the
// requester did not write it. Callers send the requester back to the post.
var ErrNotPostAuthor = errors.New("requester is not the post author")

type PostService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	now          Clock
}

type CreatePostInput struct {
	AuthorID uint
	Form     validation.PostForm
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Form   validation.PostForm
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	now Clock,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		now:          clockOrDefault(now),
	}
}

// PublicFeed lists every publicly visible post.
func (s *PostService) PublicFeed(ctx context.Context, page int) (models.Page[*models.Post], error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "PublicFeed")
	result, err := loadFeedPage(ctx, s.postRepo, repository.FeedFilter{Public: true, Now: s.now()}, page)
	observability.EndSpan(span, err)
	return result, err
}

// CategoryFeed lists the visible posts of a published category. A hidden
// category is reported as not found.
func (s *PostService) CategoryFeed(ctx context.Context, slug string, page int) (_ *models.Category, _ models.Page[*models.Post], err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "CategoryFeed")
	defer func() { observability.EndSpan(span, err) }()

	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, models.Page[*models.Post]{}, err
	}

	filter := repository.FeedFilter{Public: true, Now: s.now(), CategoryID: category.ID}
	result, err := loadFeedPage(ctx, s.postRepo, filter, page)
	if err != nil {
		return nil, models.Page[*models.Post]{}, err
	}
	return category, result, nil
}

// GetPost returns the post if viewerID may see it, and not-found otherwise.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPost(post, viewerID, s.now()) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// GetPostDetail returns the post with the comments viewerID may read.
func (s *PostService) GetPostDetail(ctx context.Context, postID, viewerID uint) (_ *models.PostDetail, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService", "GetPostDetail")
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.GetPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListForPost(ctx, post.ID, viewerID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return &models.PostDetail{
		Post:     post,
		Comments: comments,
		CanEdit:  policy.IsAuthor(post.AuthorID, viewerID),
	}, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{AuthorID: in.AuthorID, PubDate: s.now(), IsPublished: true}
	if err := s.applyForm(ctx, post, in.Form); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// EditablePost loads the post for editing by userID. A missing post is
// not-found; somebody else's post is returned with ErrNotPostAuthor.
func (s *PostService) EditablePost(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !policy.IsAuthor(post.AuthorID, userID) {
		return post, ErrNotPostAuthor
	}
	return post, nil
}

// UpdatePost saves the form when in.UserID wrote the post. Fields the form
// leaves out keep their stored values. Somebody else's post yields
// ErrNotPostAuthor and stays unchanged.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.EditablePost(ctx, in.PostID, in.UserID)
	if err != nil {
		return post, err
	}

	if err := s.applyForm(ctx, post, in.Form); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes the post and its comments. Non-authors get not-found.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireAuthor("Post", in.PostID, post.AuthorID, in.UserID); err != nil {
		return nil, err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// applyForm validates form and copies it onto post. Omitted optional fields
// leave post as it is; a category_id or location_id of 0 clears the link.
func (s *PostService) applyForm(ctx context.Context, post *models.Post, form validation.PostForm) error {
	fields := validation.Struct(&form)
	if fields == nil {
		fields = map[string]string{}
	}

	if form.CategoryID != nil && *form.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, *form.CategoryID); err != nil {
			if !isNotFound(err) {
				return err
			}
			fields["category_id"] = "Select a valid choice."
		}
	}
	if form.LocationID != nil && *form.LocationID != 0 {
		if _, err := s.locationRepo.GetByID(ctx, *form.LocationID); err != nil {
			if !isNotFound(err) {
				return err
			}
			fields["location_id"] = "Select a valid choice."
		}
	}
	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}

	post.Title = form.Title
	post.Text = form.Text
	if form.PubDate != "" {
		// Already validated above.
		post.PubDate, _ = validation.ParsePubDate(form.PubDate)
	}
	if form.IsPublished != nil {
		post.IsPublished = *form.IsPublished
	}
	if form.CategoryID != nil {
		post.CategoryID = nonZero(*form.CategoryID)
		post.Category = nil
	}
	if form.LocationID != nil {
		post.LocationID = nonZero(*form.LocationID)
		post.Location = nil
	}
	return nil
}

func nonZero(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
