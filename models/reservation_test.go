package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestReservationOverlaps(t *testing.T) {
	existing := Reservation{
		CheckInDate:  mustDate(t, "2024-01-01"),
		CheckOutDate: mustDate(t, "2024-01-05"),
	}

	tests := []struct {
		name     string
		in, out  string
		overlaps bool
	}{
		{"adjacent after", "2024-01-05", "2024-01-10", false},
		{"adjacent before", "2023-12-28", "2024-01-01", false},
		{"fully inside", "2024-01-02", "2024-01-03", true},
		{"covers", "2023-12-30", "2024-01-07", true},
		{"tail overlap", "2024-01-04", "2024-01-06", true},
		{"head overlap", "2023-12-31", "2024-01-02", true},
		{"identical", "2024-01-01", "2024-01-05", true},
		{"disjoint", "2024-02-01", "2024-02-03", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := existing.Overlaps(mustDate(t, tt.in), mustDate(t, tt.out))
			assert.Equal(t, tt.overlaps, got)
		})
	}
}

func TestDateOnlyAndNights(t *testing.T) {
	d := DateOnly(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, mustDate(t, "2024-03-09"), d)

	r := Reservation{CheckInDate: mustDate(t, "2024-03-09"), CheckOutDate: mustDate(t, "2024-03-12")}
	assert.Equal(t, 3, r.Nights())
	assert.False(t, r.IsCancelled())

	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)
}
