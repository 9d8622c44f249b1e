package controllers

import (
	"hotel-booking/apperrors"
	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// respondError renders any error through the envelope. The full error,
// cause included, is attached to the context for the access log only.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.JSONError(c, apperrors.As(err))
}

func callerIdentity(c *gin.Context) (services.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
	}
	return identity, ok
}
