package server

import (
	"cityshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetImpactStats handles GET /api/impact/stats. The row is created lazily on
// first read.
func (s *Server) GetImpactStats(c *fiber.Ctx) error {
	stats, err := s.impactRepo.GetOrCreate(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(stats)
}
