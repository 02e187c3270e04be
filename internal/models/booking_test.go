package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to accepted", BookingStatusPending, BookingStatusAccepted, true},
		{"pending to declined", BookingStatusPending, BookingStatusDeclined, true},
		{"accepted to completed", BookingStatusAccepted, BookingStatusCompleted, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"accepted to declined", BookingStatusAccepted, BookingStatusDeclined, false},
		{"declined is terminal", BookingStatusDeclined, BookingStatusAccepted, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusPending, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusAccepted, BookingStatusDeclined, BookingStatusCompleted} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, BookingStatus("cancelled").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}
