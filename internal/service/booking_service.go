package service

import (
	"context"
	"fmt"
	"time"

	"cityshare/internal/models"
	"cityshare/internal/repository"
)

type BookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
}

type CreateBookingInput struct {
	BorrowerID uint
	ItemID     uint
	PickupDate time.Time
	ReturnDate time.Time
}

type TransitionBookingInput struct {
	UserID    uint
	BookingID uint
	Status    models.BookingStatus
}

func NewBookingService(bookingRepo repository.BookingRepository, itemRepo repository.ItemRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo, itemRepo: itemRepo}
}

func (s *BookingService) ListBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.PickupDate.IsZero() || in.ReturnDate.IsZero() {
		return nil, models.NewValidationError("Pickup and return dates are required")
	}
	if !in.PickupDate.Before(in.ReturnDate) {
		return nil, models.NewValidationError("Pickup date must be before return date")
	}

	item, err := s.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == in.BorrowerID {
		return nil, models.NewValidationError("You cannot book your own item")
	}

	itemID := in.ItemID
	booking := &models.Booking{
		ItemID:     &itemID,
		BorrowerID: in.BorrowerID,
		OwnerID:    item.OwnerID,
		PickupDate: in.PickupDate,
		ReturnDate: in.ReturnDate,
		Status:     models.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// TransitionBooking enforces the booking state machine and the owner-only
// rule, then hands the write to the repository.
func (s *BookingService) TransitionBooking(ctx context.Context, in TransitionBookingInput) (*models.Booking, error) {
	if !in.Status.IsValid() {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown booking status %q", in.Status))
	}

	booking, err := s.bookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("Only the item owner can change this booking")
	}
	if !booking.Status.CanTransitionTo(in.Status) {
		return nil, models.NewValidationError(fmt.Sprintf("Cannot move booking from %s to %s", booking.Status, in.Status))
	}

	if err := s.bookingRepo.Transition(ctx, booking, in.Status); err != nil {
		return nil, err
	}
	return booking, nil
}
