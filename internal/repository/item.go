package repository

import (
	"context"
	"errors"
	"strings"

	"cityshare/internal/cache"
	"cityshare/internal/models"

	"gorm.io/gorm"
)

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context, filters models.ItemFilters) ([]models.Item, error)
	ListRecent(ctx context.Context, limit int) ([]models.Item, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	UpdateStatus(ctx context.Context, id uint, status models.ItemStatus) error
	Delete(ctx context.Context, id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository returns a new ItemRepository implementation.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Owner").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

// List applies each populated filter as an independent predicate. LOWER/LIKE
// keeps the substring match case-insensitive on both postgres and sqlite.
func (r *itemRepository) List(ctx context.Context, filters models.ItemFilters) ([]models.Item, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	query := r.db.WithContext(ctx).Model(&models.Item{}).Preload("Owner")

	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MaxDistance != nil {
		query = query.Where("distance IS NULL OR distance <= ?", *filters.MaxDistance)
	}
	if filters.VerifiedOnly {
		query = query.Where(
			"owner_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("is_verified = ?", true),
		)
	}

	var items []models.Item
	if err := query.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *itemRepository) ListRecent(ctx context.Context, limit int) ([]models.Item, error) {
	if limit <= 0 {
		limit = 6
	}
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// Create inserts the item and bumps the owner's items_listed counter in the
// same transaction, so the counter can never drift from the insert.
func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", item.OwnerID).
			UpdateColumn("items_listed", gorm.Expr("items_listed + 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, item.OwnerID)
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateItem(ctx, item.ID)
	return nil
}

func (r *itemRepository) UpdateStatus(ctx context.Context, id uint, status models.ItemStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Item", id)
	}
	cache.InvalidateItem(ctx, id)
	return nil
}

// Delete removes the item after verifying no booking is still in flight.
// Wishlist entries go with it; messages and terminal bookings keep their
// history with the item reference cleared.
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	var ownerID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Item", id)
			}
			return models.NewInternalError(err)
		}
		ownerID = item.OwnerID

		var active int64
		if err := tx.Model(&models.Booking{}).
			Where("item_id = ? AND status IN ?", id, []models.BookingStatus{models.BookingStatusPending, models.BookingStatusAccepted}).
			Count(&active).Error; err != nil {
			return models.NewInternalError(err)
		}
		if active > 0 {
			return models.NewConflictError("Item has active bookings")
		}

		if err := tx.Where("item_id = ?", id).Delete(&models.WishlistEntry{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.Message{}).Where("item_id = ?", id).Update("item_id", nil).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.Booking{}).Where("item_id = ?", id).Update("item_id", nil).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Item{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND items_listed > 0", item.OwnerID).
			UpdateColumn("items_listed", gorm.Expr("items_listed - 1")).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateItem(ctx, id)
	cache.InvalidateUser(ctx, ownerID)
	return nil
}
