package models

import "time"

// BookingStatus is the lifecycle state of a borrow booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookingTransitions encodes the only legal status transitions:
// pending -> accepted | declined, accepted -> completed.
// Declined and completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusDeclined},
	BookingStatusAccepted: {BookingStatusCompleted},
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusDeclined, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may legally move to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a time-bounded borrow request against one item. OwnerID is
// denormalized from the item for query convenience. ItemID is cleared when
// the item is deleted but the booking is kept for history.
type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	ItemID     *uint         `gorm:"index" json:"item_id,omitempty"`
	Item       *Item         `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	BorrowerID uint          `gorm:"not null;index" json:"borrower_id"`
	Borrower   *User         `gorm:"foreignKey:BorrowerID" json:"borrower,omitempty"`
	OwnerID    uint          `gorm:"not null;index" json:"owner_id"`
	Owner      *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	PickupDate time.Time     `gorm:"not null" json:"pickup_date"`
	ReturnDate time.Time     `gorm:"not null" json:"return_date"`
	Status     BookingStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
