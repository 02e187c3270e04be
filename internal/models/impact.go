package models

import "time"

// ImpactStats holds a user's aggregate sustainability figures. One row per
// user, created lazily on first read. Nothing updates these automatically;
// ImpactRepository.ApplyDelta is the extension point for future accounting.
type ImpactStats struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	ItemsReused    int       `gorm:"default:0" json:"items_reused"`
	CO2Saved       float64   `gorm:"column:co2_saved;default:0" json:"co2_saved"`
	WastePrevented float64   `gorm:"default:0" json:"waste_prevented"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ImpactDelta is an increment applied to a user's impact stats.
type ImpactDelta struct {
	ItemsReused    int
	CO2Saved       float64
	WastePrevented float64
}
