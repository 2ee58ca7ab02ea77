package server

import (
	"blogicum/internal/service"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments
// @Summary Add comment
// @Tags comments
// @Accept json
// @Param id path int true "Post ID"
// @Param request body validation.CommentForm true "Comment"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form validation.CommentForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	if _, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Form:   form,
	}); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("comment", "create")

	return seeOther(c, postURL(postID))
}

// UpdateComment handles PUT /api/posts/:id/comments/:commentId
// @Summary Edit comment
// @Tags comments
// @Accept json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param request body validation.CommentForm true "Comment"
// @Success 303
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments/{commentId} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var form validation.CommentForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	if _, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
		Form:      form,
	}); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("comment", "update")

	return seeOther(c, postURL(postID))
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
// @Summary Delete comment
// @Tags comments
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 303
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		PostID:    postID,
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("comment", "delete")

	return seeOther(c, postURL(postID))
}
