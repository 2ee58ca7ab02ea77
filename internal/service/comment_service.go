package service

import (
	"context"

	"blogicum/internal/models"
	"blogicum/internal/policy"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         Clock
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Form   validation.CommentForm
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Form      validation.CommentForm
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, now Clock) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         clockOrDefault(now),
	}
}

// CreateComment attaches a comment to a post the user can currently see.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Login required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPost(post, in.UserID, s.now()) {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if fields := validation.Struct(&in.Form); fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	comment := &models.Comment{
		Text:        in.Form.Text,
		AuthorID:    in.UserID,
		PostID:      post.ID,
		IsPublished: true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetOwnComment loads a comment addressed through its post, visible only to
// its author.
func (s *CommentService) GetOwnComment(ctx context.Context, userID, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if err := policy.RequireAuthor("Comment", commentID, comment.AuthorID, userID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.GetOwnComment(ctx, in.UserID, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if fields := validation.Struct(&in.Form); fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	comment.Text = in.Form.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.GetOwnComment(ctx, in.UserID, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}
