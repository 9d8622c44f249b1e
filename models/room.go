package models

import (
	"time"

	"gorm.io/gorm"
)

// Room availability is advisory metadata shown to clients. Whether a room can
// be booked for given dates is decided by its reservations.
type Room struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	HotelID       uint           `gorm:"column:hotel_id;not null;index" json:"hotelId"`
	RoomNumber    string         `gorm:"column:room_number;type:varchar(50);not null" json:"roomNumber"`
	Capacity      int            `gorm:"not null" json:"capacity"`
	PricePerNight float64        `gorm:"column:price_per_night;type:decimal(10,2);not null" json:"pricePerNight"`
	Availability  bool           `gorm:"not null" json:"availability"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
