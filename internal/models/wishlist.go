package models

import "time"

// WishlistEntry pairs a user with an item they want to borrow. The unique
// index makes add idempotent at the store level.
type WishlistEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item" json:"user_id"`
	ItemID        uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_item;index" json:"item_id"`
	Item          *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	AlertsEnabled bool      `gorm:"default:true" json:"alerts_enabled"`
	CreatedAt     time.Time `json:"created_at"`
}
