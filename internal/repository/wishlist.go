package repository

import (
	"context"
	"errors"

	"cityshare/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository defines persistence operations for wishlist entries.
type WishlistRepository interface {
	Add(ctx context.Context, entry *models.WishlistEntry) error
	ListByUser(ctx context.Context, userID uint) ([]models.WishlistEntry, error)
	Check(ctx context.Context, userID, itemID uint) (bool, error)
	Remove(ctx context.Context, userID, itemID uint) error
	UpdateAlerts(ctx context.Context, userID, itemID uint, enabled bool) (*models.WishlistEntry, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository returns a new WishlistRepository implementation.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add is idempotent. A duplicate insert loads and returns the existing entry
// instead of failing, leaning on the (user_id, item_id) unique index.
func (r *wishlistRepository) Add(ctx context.Context, entry *models.WishlistEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if err == nil {
		return nil
	}
	if !isUniqueConstraintError(err) {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", entry.UserID, entry.ItemID).
		First(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Owner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *wishlistRepository) Check(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.WishlistEntry{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Wishlist entry", itemID)
	}
	return nil
}

func (r *wishlistRepository) UpdateAlerts(ctx context.Context, userID, itemID uint, enabled bool) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Wishlist entry", itemID)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Model(&entry).Update("alerts_enabled", enabled).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}
