package service

import (
	"context"

	"cityshare/internal/models"
	"cityshare/internal/repository"
)

type RatingService struct {
	ratingRepo  repository.RatingRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

type CreateRatingInput struct {
	RaterID     uint
	RatedUserID uint
	BookingID   uint
	Score       int
	Review      string
}

func NewRatingService(ratingRepo repository.RatingRepository, bookingRepo repository.BookingRepository, userRepo repository.UserRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, bookingRepo: bookingRepo, userRepo: userRepo}
}

// CreateRating checks the score bounds and that the booking is completed and
// actually involves both parties before recording the rating.
func (s *RatingService) CreateRating(ctx context.Context, in CreateRatingInput) (*models.Rating, error) {
	if in.Score < models.MinRatingScore || in.Score > models.MaxRatingScore {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	if in.RaterID == in.RatedUserID {
		return nil, models.NewValidationError("You cannot rate yourself")
	}

	booking, err := s.bookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, models.NewValidationError("Only completed bookings can be rated")
	}
	raterInvolved := booking.BorrowerID == in.RaterID || booking.OwnerID == in.RaterID
	ratedInvolved := booking.BorrowerID == in.RatedUserID || booking.OwnerID == in.RatedUserID
	if !raterInvolved {
		return nil, models.NewForbiddenError("You were not part of this booking")
	}
	if !ratedInvolved {
		return nil, models.NewValidationError("Rated user was not part of this booking")
	}

	rating := &models.Rating{
		RaterID:     in.RaterID,
		RatedUserID: in.RatedUserID,
		BookingID:   in.BookingID,
		Score:       in.Score,
		Review:      in.Review,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) RatingsForUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.ratingRepo.ListForUser(ctx, userID)
}
