package server

import (
	"cityshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetWishlist handles GET /api/wishlist
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	entries, err := s.wishlistRepo.ListByUser(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(entries)
}

// AddToWishlist handles POST /api/wishlist. Adding an item twice returns the
// existing entry rather than an error.
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	var req struct {
		ItemID        uint  `json:"item_id"`
		AlertsEnabled *bool `json:"alerts_enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ItemID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("item_id is required"))
	}

	// The item must exist before it can be wished for.
	if _, err := s.itemRepo.GetByID(c.Context(), req.ItemID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	entry := &models.WishlistEntry{
		UserID:        currentUserID(c),
		ItemID:        req.ItemID,
		AlertsEnabled: true,
	}
	if req.AlertsEnabled != nil {
		entry.AlertsEnabled = *req.AlertsEnabled
	}
	if err := s.wishlistRepo.Add(c.Context(), entry); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(entry)
}

// CheckWishlist handles GET /api/wishlist/check/:itemId
func (s *Server) CheckWishlist(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	wished, err := s.wishlistRepo.Check(c.Context(), currentUserID(c), itemID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"in_wishlist": wished})
}

// RemoveFromWishlist handles DELETE /api/wishlist/:itemId
func (s *Server) RemoveFromWishlist(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	if err := s.wishlistRepo.Remove(c.Context(), currentUserID(c), itemID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}

// UpdateWishlistAlerts handles PATCH /api/wishlist/:itemId
func (s *Server) UpdateWishlistAlerts(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	var req struct {
		AlertsEnabled *bool `json:"alerts_enabled"`
	}
	if err := c.BodyParser(&req); err != nil || req.AlertsEnabled == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("alerts_enabled is required"))
	}

	entry, err := s.wishlistRepo.UpdateAlerts(c.Context(), currentUserID(c), itemID, *req.AlertsEnabled)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(entry)
}
