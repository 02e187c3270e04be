// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a CityShare member. Users are never hard-deleted; the
// rolling rating fields are maintained by the rating repository and the
// listed/borrowed counters by the item and booking repositories.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"unique;not null" json:"username"`
	Password      string         `gorm:"not null" json:"-"`
	DisplayName   string         `json:"display_name"`
	Bio           string         `json:"bio"`
	Location      string         `json:"location"`
	AvatarURL     string         `json:"avatar_url"`
	IsVerified    bool           `gorm:"default:false" json:"is_verified"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	TotalRatings  int            `gorm:"default:0" json:"total_ratings"`
	ItemsListed   int            `gorm:"default:0" json:"items_listed"`
	ItemsBorrowed int            `gorm:"default:0" json:"items_borrowed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
