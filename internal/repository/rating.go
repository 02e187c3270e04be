package repository

import (
	"context"
	"errors"

	"cityshare/internal/cache"
	"cityshare/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListForUser(ctx context.Context, userID uint) ([]models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts the rating and recomputes the rated user's aggregate in the
// same transaction. The aggregate comes from one AVG/COUNT query over the
// committed rows, so concurrent submissions converge on the same numbers.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Booking already rated")
			}
			return models.NewInternalError(err)
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&models.Rating{}).
			Select("AVG(rating) AS avg, COUNT(*) AS count").
			Where("rated_user_id = ?", rating.RatedUserID).
			Scan(&agg).Error; err != nil {
			return models.NewInternalError(err)
		}
		return tx.Model(&models.User{}).
			Where("id = ?", rating.RatedUserID).
			Updates(map[string]interface{}{
				"rating":        agg.Avg,
				"total_ratings": agg.Count,
			}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, rating.RatedUserID)
	return nil
}

func (r *ratingRepository) ListForUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rated_user_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}
