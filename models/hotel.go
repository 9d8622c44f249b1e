package models

import (
	"time"

	"gorm.io/datatypes"
)

type Hotel struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	Name               string                      `gorm:"size:255;not null" json:"name"`
	ImageURL           string                      `gorm:"column:image_url;size:512;not null" json:"imageUrl"`
	Address            string                      `gorm:"size:255;not null" json:"address"`
	PricePerNight      float64                     `gorm:"column:price_per_night;type:decimal(10,2);not null;index" json:"pricePerNight"`
	Rating             float64                     `gorm:"index" json:"rating"`
	Amenities          datatypes.JSONSlice[string] `json:"amenities"`
	CancellationPolicy string                      `gorm:"column:cancellation_policy;type:text" json:"cancellationPolicy"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`

	// One-To-Many: Hotel -> Rooms
	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}
