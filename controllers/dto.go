package controllers

import (
	"time"

	"hotel-booking/models"
)

// ---------------------------
// Requests
// ---------------------------

type signupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type hotelRequest struct {
	Name               string   `json:"name" binding:"required,max=255"`
	ImageURL           string   `json:"imageUrl" binding:"omitempty,url,max=512"`
	Address            string   `json:"address" binding:"required,max=255"`
	PricePerNight      float64  `json:"pricePerNight" binding:"required,gt=0"`
	Rating             float64  `json:"rating" binding:"gte=0,lte=5"`
	Amenities          []string `json:"amenities" binding:"omitempty,max=50,dive,max=64"`
	CancellationPolicy string   `json:"cancellationPolicy" binding:"max=2000"`
}

type hotelQuery struct {
	Address   string   `form:"address"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Rating    *float64 `form:"rating" binding:"omitempty,gte=0,lte=5"`
	Amenities string   `form:"amenities"`
}

type roomRequest struct {
	RoomNumber    string  `json:"roomNumber" binding:"required,max=50"`
	Capacity      int     `json:"capacity" binding:"required,gt=0"`
	PricePerNight float64 `json:"pricePerNight" binding:"required,gt=0"`
	// defaults to true when omitted
	Availability *bool `json:"availability"`
}

type roomUpdateRequest struct {
	RoomNumber    *string  `json:"roomNumber" binding:"omitempty,min=1,max=50"`
	Capacity      *int     `json:"capacity" binding:"omitempty,gt=0"`
	PricePerNight *float64 `json:"pricePerNight" binding:"omitempty,gt=0"`
	Availability  *bool    `json:"availability"`
}

type stayQuery struct {
	CheckInDate  string `form:"checkInDate" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `form:"checkOutDate" binding:"required,datetime=2006-01-02"`
}

type reservationRequest struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	GuestName    string `json:"guestName" binding:"required,max=255"`
	Phone        string `json:"phone" binding:"required,max=50"`
	CheckInDate  string `json:"checkInDate" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" binding:"required,datetime=2006-01-02"`
}

type paymentRequest struct {
	ReservationID uint    `json:"reservationId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0,lte=99999999.99,cents"`
	Currency      string  `json:"currency" binding:"required,len=3,alpha"`
	Source        string  `json:"source" binding:"required,max=255"`
}

// ---------------------------
// Responses
// ---------------------------

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// hotelDetailResponse always carries a rooms array, empty included.
type hotelDetailResponse struct {
	models.Hotel
	Rooms []models.Room `json:"rooms"`
}

type reservationResponse struct {
	ID           uint       `json:"id"`
	RoomID       uint       `json:"roomId"`
	UserID       uint       `json:"userId"`
	GuestName    string     `json:"guestName"`
	Phone        string     `json:"phone"`
	CheckInDate  string     `json:"checkInDate"`
	CheckOutDate string     `json:"checkOutDate"`
	Nights       int        `json:"nights"`
	Status       string     `json:"status"`
	CancelledAt  *time.Time `json:"cancelledAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toReservationResponse(r models.Reservation) reservationResponse {
	return reservationResponse{
		ID:           r.ID,
		RoomID:       r.RoomID,
		UserID:       r.UserID,
		GuestName:    r.GuestName,
		Phone:        r.Phone,
		CheckInDate:  r.CheckInDate.Format(models.DateLayout),
		CheckOutDate: r.CheckOutDate.Format(models.DateLayout),
		Nights:       r.Nights(),
		Status:       r.Status,
		CancelledAt:  r.CancelledAt,
		CreatedAt:    r.CreatedAt,
	}
}

type availabilityResponse struct {
	HotelID      uint   `json:"hotelId"`
	RoomID       uint   `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Available    bool   `json:"available"`
}
