package server

import (
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	view, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(view)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdatePrivacy handles PUT /api/settings/privacy. Absent fields keep
// their current value, so clients can flip a single flag.
func (s *Server) UpdatePrivacy(c *fiber.Ctx) error {
	var req struct {
		ProfilePublic         *bool `json:"profile_public"`
		RequireFollowApproval *bool `json:"require_follow_approval"`
		DefaultAnonymous      *bool `json:"default_anonymous"`
		ActivityVisible       *bool `json:"activity_visible"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdatePrivacy(c.Context(), service.PrivacyInput{
		UserID:                currentUserID(c),
		ProfilePublic:         req.ProfilePublic,
		RequireFollowApproval: req.RequireFollowApproval,
		DefaultAnonymous:      req.DefaultAnonymous,
		ActivityVisible:       req.ActivityVisible,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateCustomization handles PUT /api/profile/customize
func (s *Server) UpdateCustomization(c *fiber.Ctx) error {
	var req struct {
		CoverPhoto   string `json:"cover_photo"`
		ThemeColor   string `json:"theme_color"`
		Badge        string `json:"badge"`
		PinnedPostID *uint  `json:"pinned_post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateCustomization(c.Context(), service.CustomizationInput{
		UserID:       currentUserID(c),
		CoverPhoto:   req.CoverPhoto,
		ThemeColor:   req.ThemeColor,
		Badge:        req.Badge,
		PinnedPostID: req.PinnedPostID,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.userService.GetProfile(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(view)
}

// GetUserActivity handles GET /api/users/:id/activity
func (s *Server) GetUserActivity(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.userService.GetProfile(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"activity": view.Activity})
}
