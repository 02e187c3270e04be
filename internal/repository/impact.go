package repository

import (
	"context"
	"errors"

	"cityshare/internal/cache"
	"cityshare/internal/models"

	"gorm.io/gorm"
)

// ImpactRepository defines persistence operations for impact statistics.
type ImpactRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.ImpactStats, error)
	ApplyDelta(ctx context.Context, userID uint, delta models.ImpactDelta) (*models.ImpactStats, error)
}

type impactRepository struct {
	db *gorm.DB
}

// NewImpactRepository returns a new ImpactRepository implementation.
func NewImpactRepository(db *gorm.DB) ImpactRepository {
	return &impactRepository{db: db}
}

// GetOrCreate returns the user's impact row, creating a zeroed one on first
// read. A concurrent first read loses the insert race and falls back to the
// winner's row.
func (r *impactRepository) GetOrCreate(ctx context.Context, userID uint) (*models.ImpactStats, error) {
	var stats models.ImpactStats
	err := cache.Aside(ctx, cache.ImpactKey(userID), &stats, cache.ImpactTTL, func() error {
		err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}

		stats = models.ImpactStats{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
			if isUniqueConstraintError(err) {
				if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
					return models.NewInternalError(err)
				}
				return nil
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ApplyDelta accumulates impact counters for a user. Nothing calls this on a
// booking lifecycle yet; it is the hook for that accounting.
func (r *impactRepository) ApplyDelta(ctx context.Context, userID uint, delta models.ImpactDelta) (*models.ImpactStats, error) {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.ImpactStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"items_reused":    gorm.Expr("items_reused + ?", delta.ItemsReused),
			"co2_saved":       gorm.Expr("co2_saved + ?", delta.CO2Saved),
			"waste_prevented": gorm.Expr("waste_prevented + ?", delta.WastePrevented),
		}).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateImpact(ctx, userID)

	var stats models.ImpactStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}
