package models

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// DateLayout is the wire and storage format of stay dates.
const DateLayout = "2006-01-02"

// Reservation occupies its room for the half-open interval [CheckInDate, CheckOutDate).
type Reservation struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	GuestName    string     `gorm:"column:guest_name;size:255;not null" json:"guestName"`
	Phone        string     `gorm:"size:50;not null" json:"phone"`
	CheckInDate  time.Time  `gorm:"column:check_in_date;type:date;not null;index:idx_reservation_room_stay,priority:2" json:"checkInDate"`
	CheckOutDate time.Time  `gorm:"column:check_out_date;type:date;not null;index:idx_reservation_room_stay,priority:3" json:"checkOutDate"`
	RoomID       uint       `gorm:"column:room_id;not null;index:idx_reservation_room_stay,priority:1" json:"roomId"`
	UserID       uint       `gorm:"column:user_id;not null;index" json:"userId"`
	Status       string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelledAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (r Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}

// Overlaps reports whether the stay intersects [checkIn, checkOut).
// Stays that only share a boundary day do not overlap.
func (r Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckInDate.Before(checkOut) && r.CheckOutDate.After(checkIn)
}

// Nights is the number of nights between check-in and check-out.
func (r Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
