package server

import (
	"strconv"
	"strings"

	"blogicum/internal/repository"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminListCategories handles GET /api/admin/categories
// @Summary List categories
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/categories [get]
func (s *Server) AdminListCategories(c *fiber.Ctx) error {
	categories, err := s.adminService.ListCategories(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(categories)
}

// AdminCreateCategory handles POST /api/admin/categories
// @Summary Create category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param request body validation.CategoryForm true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (s *Server) AdminCreateCategory(c *fiber.Ctx) error {
	var form validation.CategoryForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	category, err := s.adminService.CreateCategory(c.UserContext(), form)
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("category", "create")
	return c.Status(fiber.StatusCreated).JSON(category)
}

// AdminUpdateCategory handles PUT /api/admin/categories/:id
// @Summary Update category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body validation.CategoryForm true "Category"
// @Success 200 {object} models.Category
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/categories/{id} [put]
func (s *Server) AdminUpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var form validation.CategoryForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	category, err := s.adminService.UpdateCategory(c.UserContext(), id, form)
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("category", "update")
	return c.JSON(category)
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id
// @Summary Delete category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/categories/{id} [delete]
func (s *Server) AdminDeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteCategory(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("category", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListLocations handles GET /api/admin/locations
// @Summary List locations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Location
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/locations [get]
func (s *Server) AdminListLocations(c *fiber.Ctx) error {
	locations, err := s.adminService.ListLocations(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(locations)
}

// AdminCreateLocation handles POST /api/admin/locations
// @Summary Create location
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param request body validation.LocationForm true "Location"
// @Success 201 {object} models.Location
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/locations [post]
func (s *Server) AdminCreateLocation(c *fiber.Ctx) error {
	var form validation.LocationForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	location, err := s.adminService.CreateLocation(c.UserContext(), form)
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("location", "create")
	return c.Status(fiber.StatusCreated).JSON(location)
}

// AdminUpdateLocation handles PUT /api/admin/locations/:id
// @Summary Update location
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param request body validation.LocationForm true "Location"
// @Success 200 {object} models.Location
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/locations/{id} [put]
func (s *Server) AdminUpdateLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var form validation.LocationForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	location, err := s.adminService.UpdateLocation(c.UserContext(), id, form)
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("location", "update")
	return c.JSON(location)
}

// AdminDeleteLocation handles DELETE /api/admin/locations/:id
// @Summary Delete location
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/locations/{id} [delete]
func (s *Server) AdminDeleteLocation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.adminService.DeleteLocation(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("location", "delete")
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListPosts handles GET /api/admin/posts
// Filters: is_published, category, location, author (IDs) and q (title/text search).
// @Summary List posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param is_published query bool false "Visibility flag"
// @Param q query string false "Title or text search"
// @Param page query string false "Page number or 'last'"
// @Success 200 {object} models.Page[models.Post]
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/posts [get]
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	filter := repository.AdminPostFilter{
		IsPublished: queryBool(c, "is_published"),
		CategoryID:  queryUint(c, "category"),
		LocationID:  queryUint(c, "location"),
		AuthorID:    queryUint(c, "author"),
		Query:       strings.TrimSpace(c.Query("q")),
	}

	page, err := s.adminService.ListPosts(c.UserContext(), filter, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// AdminListComments handles GET /api/admin/comments
// @Summary List comments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param is_published query bool false "Visibility flag"
// @Param page query string false "Page number or 'last'"
// @Success 200 {object} models.Page[models.Comment]
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/comments [get]
func (s *Server) AdminListComments(c *fiber.Ctx) error {
	filter := repository.AdminCommentFilter{
		IsPublished: queryBool(c, "is_published"),
		PostID:      queryUint(c, "post"),
		AuthorID:    queryUint(c, "author"),
	}

	page, err := s.adminService.ListComments(c.UserContext(), filter, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// AdminModeratePost handles PATCH /api/admin/posts/:id
// @Summary Moderate post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body validation.ModerationForm true "Moderation"
// @Success 200 {object} object{id=int,is_published=bool}
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/posts/{id} [patch]
func (s *Server) AdminModeratePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var form validation.ModerationForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	if err := s.adminService.ModeratePost(c.UserContext(), id, form); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("post", "moderate")
	return c.JSON(fiber.Map{"id": id, "is_published": *form.IsPublished})
}

// AdminModerateComment handles PATCH /api/admin/comments/:id
// @Summary Moderate comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body validation.ModerationForm true "Moderation"
// @Success 200 {object} object{id=int,is_published=bool}
// @Failure 404 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/comments/{id} [patch]
func (s *Server) AdminModerateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var form validation.ModerationForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	if err := s.adminService.ModerateComment(c.UserContext(), id, form); err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("comment", "moderate")
	return c.JSON(fiber.Map{"id": id, "is_published": *form.IsPublished})
}

// AdminListAdmins handles GET /api/admin/users
// @Summary List admins
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users [get]
func (s *Server) AdminListAdmins(c *fiber.Ctx) error {
	admins, err := s.adminService.ListAdmins(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(admins)
}

func queryBool(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryUint(c *fiber.Ctx, key string) uint {
	v, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
