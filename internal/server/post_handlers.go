package server

import (
	"errors"

	"blogicum/internal/service"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary Public feed
// @Description Publicly visible posts, newest first, 10 per page
// @Tags posts
// @Produce json
// @Param page query string false "Page number or 'last'"
// @Success 200 {object} models.Page[models.Post]
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.PublicFeed(c.UserContext(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
// @Summary Post detail
// @Description The post with its comments. Hidden posts are visible to their author only.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.postService.GetPostDetail(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Param request body validation.PostForm true "Post"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form validation.PostForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Form:     form,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("post", "create")

	return seeOther(c, profileURL(post.Author.Username))
}

// UpdatePost handles PUT /api/posts/:id
// @Summary Edit post
// @Description Authors save and are redirected to the post. Everybody else is redirected to the post unchanged.
// @Tags posts
// @Accept json
// @Param id path int true "Post ID"
// @Param request body validation.PostForm true "Post"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postService.EditablePost(c.UserContext(), id, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrNotPostAuthor) {
			return seeOther(c, postURL(id))
		}
		return respondServiceError(c, err)
	}

	var form validation.PostForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	_, err = s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID: currentUserID(c),
		PostID: id,
		Form:   form,
	})
	if errors.Is(err, service.ErrNotPostAuthor) {
		return seeOther(c, postURL(id))
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("post", "update")

	return seeOther(c, postURL(id))
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Removes the post and its comments. Only the author may delete.
// @Tags posts
// @Param id path int true "Post ID"
// @Success 303
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("post", "delete")

	return seeOther(c, profileURL(post.Author.Username))
}

// GetCategoryPosts handles GET /api/category/:slug
// @Summary Category feed
// @Tags posts
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query string false "Page number or 'last'"
// @Success 200 {object} object{category=models.Category,posts=models.Page[models.Post]}
// @Failure 404 {object} models.ErrorResponse
// @Router /category/{slug} [get]
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	category, page, err := s.postService.CategoryFeed(c.UserContext(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"posts":    page,
	})
}
