package controllers

import (
	"net/http"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// RoomController manages rooms nested under a hotel.
type RoomController struct {
	HotelSvc       *services.HotelService
	ReservationSvc *services.ReservationService
}

func NewRoomController(hotels *services.HotelService, reservations *services.ReservationService) *RoomController {
	return &RoomController{HotelSvc: hotels, ReservationSvc: reservations}
}

func hotelAndRoomIDs(c *gin.Context) (hotelID, roomID uint, ok bool) {
	if hotelID, ok = uintParam(c, "hotelId"); !ok {
		return 0, 0, false
	}
	if roomID, ok = uintParam(c, "roomId"); !ok {
		return 0, 0, false
	}
	return hotelID, roomID, true
}

// POST /api/v1/hotels/:hotelId/rooms (admin)
func (rc *RoomController) AddRoom(c *gin.Context) {
	hotelID, ok := uintParam(c, "hotelId")
	if !ok {
		return
	}
	var req roomRequest
	if !bindJSON(c, &req) {
		return
	}

	available := true
	if req.Availability != nil {
		available = *req.Availability
	}
	room, err := rc.HotelSvc.AddRoom(c.Request.Context(), hotelID, services.RoomInput{
		RoomNumber:    req.RoomNumber,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Availability:  available,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PUT /api/v1/hotels/:hotelId/rooms/:roomId (admin)
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomIDs(c)
	if !ok {
		return
	}
	var req roomUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := rc.HotelSvc.UpdateRoom(c.Request.Context(), hotelID, roomID, services.RoomUpdate{
		RoomNumber:    req.RoomNumber,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		Availability:  req.Availability,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/v1/hotels/:hotelId/rooms/:roomId (admin)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomIDs(c)
	if !ok {
		return
	}

	if err := rc.HotelSvc.DeleteRoom(c.Request.Context(), hotelID, roomID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": roomID, "deleted": true})
}

// GET /api/v1/hotels/:hotelId/rooms/:roomId/availability?checkInDate=&checkOutDate=
func (rc *RoomController) Availability(c *gin.Context) {
	hotelID, roomID, ok := hotelAndRoomIDs(c)
	if !ok {
		return
	}
	var q stayQuery
	if !bindQuery(c, &q) {
		return
	}
	checkIn, checkOut, err := parseStay(q.CheckInDate, q.CheckOutDate)
	if err != nil {
		respondError(c, err)
		return
	}

	free, err := rc.ReservationSvc.CheckAvailability(c.Request.Context(), hotelID, roomID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, availabilityResponse{
		HotelID:      hotelID,
		RoomID:       roomID,
		CheckInDate:  checkIn.Format(models.DateLayout),
		CheckOutDate: checkOut.Format(models.DateLayout),
		Available:    free,
	})
}
