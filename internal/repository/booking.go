package repository

import (
	"context"
	"errors"

	"cityshare/internal/cache"
	"cityshare/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Transition(ctx context.Context, booking *models.Booking, next models.BookingStatus) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a new BookingRepository implementation.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Borrower").
		Preload("Owner").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Booking", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &booking, nil
}

// ListByUser returns bookings where the user is borrower or owner.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Borrower").
		Preload("Owner").
		Where("borrower_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookings, nil
}

// Create inserts the booking and bumps the borrower's items_borrowed counter
// in the same transaction.
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", booking.BorrowerID).
			UpdateColumn("items_borrowed", gorm.Expr("items_borrowed + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, booking.BorrowerID)
	return nil
}

// Transition moves the booking to next and keeps the item's status in step:
// accepted marks the item borrowed, completed releases it. Both writes share
// one transaction. Legality of the transition is the service's concern.
func (r *bookingRepository) Transition(ctx context.Context, booking *models.Booking, next models.BookingStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("status", next).Error; err != nil {
			return err
		}

		if booking.ItemID == nil {
			return nil
		}
		switch next {
		case models.BookingStatusAccepted:
			return tx.Model(&models.Item{}).
				Where("id = ?", *booking.ItemID).
				Update("status", models.ItemStatusBorrowed).Error
		case models.BookingStatusCompleted:
			return tx.Model(&models.Item{}).
				Where("id = ?", *booking.ItemID).
				Update("status", models.ItemStatusAvailable).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	booking.Status = next
	if booking.ItemID != nil {
		cache.InvalidateItem(ctx, *booking.ItemID)
	}
	return nil
}
