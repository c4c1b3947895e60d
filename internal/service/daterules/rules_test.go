package daterules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		wantRange bool
		wantPast  bool
	}{
		{
			name:     "valid future range",
			checkIn:  date("2025-06-05"),
			checkOut: date("2025-06-08"),
		},
		{
			name:     "checkin today is allowed",
			checkIn:  date("2025-06-01"),
			checkOut: date("2025-06-02"),
		},
		{
			name:      "checkout equal to checkin",
			checkIn:   date("2025-06-05"),
			checkOut:  date("2025-06-05"),
			wantRange: true,
		},
		{
			name:      "checkout before checkin",
			checkIn:   date("2025-06-10"),
			checkOut:  date("2025-06-05"),
			wantRange: true,
		},
		{
			name:     "checkin in the past",
			checkIn:  date("2025-05-30"),
			checkOut: date("2025-06-03"),
			wantPast: true,
		},
		{
			name:      "both violations reported together",
			checkIn:   date("2025-05-30"),
			checkOut:  date("2025-05-29"),
			wantRange: true,
			wantPast:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.checkIn, tt.checkOut, now)

			assert.Equal(t, tt.wantRange, res.Has(ErrInvalidRange))
			assert.Equal(t, tt.wantPast, res.Has(ErrPastCheckin))
			assert.Equal(t, !tt.wantRange && !tt.wantPast, res.Valid())
		})
	}
}

func TestValidate_InvalidRangeIndependentOfPastCheckin(t *testing.T) {
	now := date("2025-06-01")
	base := date("2025-01-01")

	// перебираем заезды в прошлом и будущем, выезд до/после заезда
	for in := 0; in < 400; in += 37 {
		for delta := -5; delta <= 5; delta++ {
			checkIn := base.AddDate(0, 0, in)
			checkOut := checkIn.AddDate(0, 0, delta)

			res := Validate(checkIn, checkOut, now)

			assert.Equal(t, delta <= 0, res.Has(ErrInvalidRange),
				"checkin=%s checkout=%s", checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
		}
	}
}

func TestValidate_MissingDates(t *testing.T) {
	res := Validate(time.Time{}, date("2025-06-03"), date("2025-06-01"))

	require.False(t, res.Valid())
	assert.True(t, res.Has(ErrMissingDates))
}

func TestResult_Err(t *testing.T) {
	res := Validate(date("2025-05-30"), date("2025-05-29"), date("2025-06-01"))

	err := res.Err()
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Violations, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, err, ErrPastCheckin)

	assert.NoError(t, Validate(date("2025-06-02"), date("2025-06-03"), date("2025-06-01")).Err())
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"three nights", date("2025-01-10"), date("2025-01-13"), 3},
		{"one night", date("2025-01-10"), date("2025-01-11"), 1},
		{"partial day rounds up", date("2025-03-29"), date("2025-03-30").Add(23 * time.Hour), 2},
		{"dst skew one hour short", date("2025-03-29"), date("2025-03-31").Add(-time.Hour), 2},
		{"invalid range", date("2025-01-13"), date("2025-01-10"), 0},
		{"same day", date("2025-01-10"), date("2025-01-10"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}
