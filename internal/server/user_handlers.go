package server

import (
	"cityshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	maxDisplayNameLen = 100
	maxBioLen         = 1000
	maxLocationLen    = 200
	maxAvatarURLLen   = 2048
)

// UpdateMyProfile handles PATCH /api/users/me. Only the profile fields are
// writable; absent fields are left alone.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		AvatarURL   *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		if len(*req.DisplayName) > maxDisplayNameLen {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Display name too long"))
		}
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		if len(*req.Bio) > maxBioLen {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Bio too long"))
		}
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		if len(*req.Location) > maxLocationLen {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Location too long"))
		}
		updates["location"] = *req.Location
	}
	if req.AvatarURL != nil {
		if len(*req.AvatarURL) > maxAvatarURLLen {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Avatar URL too long"))
		}
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No profile fields to update"))
	}

	user, err := s.userRepo.UpdateProfile(c.Context(), currentUserID(c), updates)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}
