package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
		{BookingStatus("UNKNOWN"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsActive())
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus("CONFIRMED")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ParseBookingStatus("confirmed")
	assert.False(t, ok)
}
