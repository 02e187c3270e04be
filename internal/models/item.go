package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ItemStatus is the lifecycle state of a listing.
type ItemStatus string

// Item listing status values.
const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusBorrowed  ItemStatus = "borrowed"
	ItemStatusPending   ItemStatus = "pending"
)

// ImageList is an ordered list of image URLs stored as a JSON column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported image list column type %T", value)
	}
}

// Item represents a household item listed for lending. Ownership is
// immutable after creation; deletion is a hard delete.
type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null;index" json:"category"`
	Images      ImageList `gorm:"type:json" json:"images"`
	Location    string    `gorm:"not null" json:"location"`
	// Distance is a static stored figure, not computed from coordinates.
	// A nil distance means "unknown" and passes every distance filter.
	Distance  *float64   `json:"distance,omitempty"`
	Status    ItemStatus `gorm:"not null;default:'available'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ItemFilters holds the optional, independently composable listing filters.
// Every set field contributes one predicate; predicates combine with AND.
type ItemFilters struct {
	Search       string
	Category     string
	MaxDistance  *float64
	VerifiedOnly bool
	Limit        int
}
