package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// POST /api/v1/payments/create-payment
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var req paymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := pc.PaymentSvc.Charge(c.Request.Context(), services.ChargeInput{
		ReservationID: req.ReservationID,
		Caller:        identity,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Source:        req.Source,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}
