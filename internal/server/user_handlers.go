package server

import (
	"blogicum/internal/service"
	"blogicum/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile/:username
// @Summary User profile
// @Description Public card and feed. The owner also sees unpublished and scheduled posts.
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Param page query string false "Page number or 'last'"
// @Success 200 {object} service.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username} [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.userService.ProfileFeed(c.UserContext(), c.Params("username"), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profile
// @Summary Own identity record
// @Tags profile
// @Produce json
// @Success 200 {object} models.User
// @Security BearerAuth
// @Router /profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/profile
// @Summary Edit own identity record
// @Tags profile
// @Accept json
// @Param request body validation.ProfileForm true "Profile"
// @Success 303
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profile [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var form validation.ProfileForm
	if err := bindForm(c, &form); err != nil {
		return nil
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Form:   form,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	recordMutation("user", "update")

	return seeOther(c, profileURL(user.Username))
}
