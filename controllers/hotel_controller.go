package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: svc}
}

// GET /api/v1/hotels?address=&minPrice=&maxPrice=&rating=&amenities=
func (hc *HotelController) ListHotels(c *gin.Context) {
	var q hotelQuery
	if !bindQuery(c, &q) {
		return
	}

	hotels, err := hc.HotelSvc.ListHotels(c.Request.Context(), services.HotelFilter{
		Address:   q.Address,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.Rating,
		Amenities: q.Amenities,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// GET /api/v1/hotels/:hotelId
func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := uintParam(c, "hotelId")
	if !ok {
		return
	}

	hotel, err := hc.HotelSvc.GetHotelWithRooms(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotelDetailResponse{Hotel: *hotel, Rooms: hotel.Rooms})
}

// POST /api/v1/hotels (admin)
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req hotelRequest
	if !bindJSON(c, &req) {
		return
	}

	hotel, err := hc.HotelSvc.CreateHotel(c.Request.Context(), services.HotelInput{
		Name:               req.Name,
		ImageURL:           req.ImageURL,
		Address:            req.Address,
		PricePerNight:      req.PricePerNight,
		Rating:             req.Rating,
		Amenities:          req.Amenities,
		CancellationPolicy: req.CancellationPolicy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}
