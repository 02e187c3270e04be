package server

import (
	"strconv"

	"cityshare/internal/models"
	"cityshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetItems handles GET /api/items with optional search, category,
// maxDistance, verifiedOnly and limit query parameters.
func (s *Server) GetItems(c *fiber.Ctx) error {
	filters := models.ItemFilters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Limit:    c.QueryInt("limit", 0),
	}
	if raw := c.Query("maxDistance"); raw != "" {
		maxDistance, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid maxDistance"))
		}
		filters.MaxDistance = &maxDistance
	}
	if raw := c.Query("verifiedOnly"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid verifiedOnly"))
		}
		filters.VerifiedOnly = verified
	}

	items, err := s.itemService.ListItems(c.Context(), filters)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(items)
}

// GetRecentItems handles GET /api/items/recent
func (s *Server) GetRecentItems(c *fiber.Ctx) error {
	items, err := s.itemService.RecentItems(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(items)
}

// GetMyItems handles GET /api/items/my-items
func (s *Server) GetMyItems(c *fiber.Ctx) error {
	items, err := s.itemService.MyItems(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(items)
}

// GetItem handles GET /api/items/:id
func (s *Server) GetItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItem(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(item)
}

type itemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Distance    *float64 `json:"distance"`
}

// CreateItem handles POST /api/items. The owner is always the caller; an
// ownerId in the payload is ignored.
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.CreateItem(c.Context(), service.CreateItemInput{
		OwnerID:     currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
		Distance:    req.Distance,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PATCH /api/items/:id
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.UpdateItem(c.Context(), service.UpdateItemInput{
		UserID:      currentUserID(c),
		ItemID:      id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
		Distance:    req.Distance,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /api/items/:id
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.itemService.DeleteItem(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
