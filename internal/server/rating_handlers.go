package server

import (
	"cityshare/internal/models"
	"cityshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRating handles POST /api/ratings
func (s *Server) CreateRating(c *fiber.Ctx) error {
	var req struct {
		RatedUserID uint   `json:"rated_user_id"`
		BookingID   uint   `json:"booking_id"`
		Rating      int    `json:"rating"`
		Review      string `json:"review"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RatedUserID == 0 || req.BookingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("rated_user_id and booking_id are required"))
	}

	rating, err := s.ratingService.CreateRating(c.Context(), service.CreateRatingInput{
		RaterID:     currentUserID(c),
		RatedUserID: req.RatedUserID,
		BookingID:   req.BookingID,
		Score:       req.Rating,
		Review:      req.Review,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetUserRatings handles GET /api/ratings/user/:userId
func (s *Server) GetUserRatings(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	ratings, err := s.ratingService.RatingsForUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(ratings)
}
