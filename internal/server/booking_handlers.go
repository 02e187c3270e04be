package server

import (
	"time"

	"cityshare/internal/models"
	"cityshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBookings handles GET /api/bookings
func (s *Server) GetBookings(c *fiber.Ctx) error {
	bookings, err := s.bookingService.ListBookings(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(bookings)
}

// CreateBooking handles POST /api/bookings
func (s *Server) CreateBooking(c *fiber.Ctx) error {
	var req struct {
		ItemID     uint   `json:"item_id"`
		PickupDate string `json:"pickup_date"`
		ReturnDate string `json:"return_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ItemID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("item_id is required"))
	}

	pickup, err := parseDate(req.PickupDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid pickup_date"))
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid return_date"))
	}

	booking, err := s.bookingService.CreateBooking(c.Context(), service.CreateBookingInput{
		BorrowerID: currentUserID(c),
		ItemID:     req.ItemID,
		PickupDate: pickup,
		ReturnDate: ret,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status
func (s *Server) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	booking, err := s.bookingService.TransitionBooking(c.Context(), service.TransitionBookingInput{
		UserID:    currentUserID(c),
		BookingID: id,
		Status:    models.BookingStatus(req.Status),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(booking)
}

// parseDate accepts RFC3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
