package controllers

import (
	"net/http"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

func parseStay(in, out string) (time.Time, time.Time, error) {
	checkIn, err := models.ParseDate(in)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("checkInDate must be a date in YYYY-MM-DD format")
	}
	checkOut, err := models.ParseDate(out)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("checkOutDate must be a date in YYYY-MM-DD format")
	}
	return checkIn, checkOut, nil
}

// POST /api/v1/reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req reservationRequest
	if !bindJSON(c, &req) {
		return
	}
	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		respondError(c, err)
		return
	}

	reservation, err := rc.ReservationSvc.CreateReservation(c.Request.Context(), services.CreateReservationInput{
		RoomID:       req.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		GuestName:    req.GuestName,
		Phone:        req.Phone,
		UserID:       identity.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, toReservationResponse(*reservation))
}

// GET /api/v1/reservations
func (rc *ReservationController) ListReservations(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	reservations, err := rc.ReservationSvc.ListReservations(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResponse(r))
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// PUT /api/v1/reservations/:id/cancel
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	reservation, err := rc.ReservationSvc.CancelReservation(c.Request.Context(), id, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, toReservationResponse(*reservation))
}
