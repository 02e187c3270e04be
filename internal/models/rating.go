package models

import "time"

// Rating score bounds.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is a score left by one user for another, scoped to a completed
// booking. One rating per (booking, rater) direction is enforced by the
// unique index.
type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RaterID     uint      `gorm:"not null;index;uniqueIndex:idx_ratings_booking_rater" json:"rater_id"`
	Rater       *User     `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	RatedUserID uint      `gorm:"not null;index" json:"rated_user_id"`
	RatedUser   *User     `gorm:"foreignKey:RatedUserID" json:"rated_user,omitempty"`
	BookingID   uint      `gorm:"not null;uniqueIndex:idx_ratings_booking_rater" json:"booking_id"`
	Score       int       `gorm:"column:rating;not null" json:"rating"`
	Review      string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
