package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
)

// Deps is everything the router needs, built once in main.
type Deps struct {
	DB          *gorm.DB
	Log         zerolog.Logger
	CORSOrigins []string
	Verifier    middleware.TokenVerifier
	AuthLimiter *middleware.RateLimiter

	Auth         *controllers.AuthController
	Hotels       *controllers.HotelController
	Rooms        *controllers.RoomController
	Reservations *controllers.ReservationController
	Payments     *controllers.PaymentController
}

func corsOrigins(configured []string) []string {
	if len(configured) == 0 {
		return []string{"*"}
	}
	return configured
}

func SetupRouter(d Deps) *gin.Engine {
	controllers.RegisterValidation()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.Metrics(),
	)

	origins := corsOrigins(d.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := config.PingDatabase(ctx, d.DB); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := middleware.Authenticate(d.Verifier)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth", d.AuthLimiter.Handler())
		{
			auth.POST("/signup", d.Auth.Signup)
			auth.POST("/login", d.Auth.Login)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", d.Hotels.ListHotels)
			hotels.GET("/:hotelId", d.Hotels.GetHotel)
			hotels.GET("/:hotelId/rooms/:roomId/availability", d.Rooms.Availability)

			admin := hotels.Group("", authenticated, adminOnly)
			admin.POST("", d.Hotels.CreateHotel)
			admin.POST("/:hotelId/rooms", d.Rooms.AddRoom)
			admin.PUT("/:hotelId/rooms/:roomId", d.Rooms.UpdateRoom)
			admin.DELETE("/:hotelId/rooms/:roomId", d.Rooms.DeleteRoom)
		}

		reservations := api.Group("/reservations", authenticated)
		{
			reservations.POST("", d.Reservations.CreateReservation)
			reservations.GET("", d.Reservations.ListReservations)
			reservations.PUT("/:id/cancel", d.Reservations.CancelReservation)
		}

		payments := api.Group("/payments", authenticated)
		{
			payments.POST("/create-payment", d.Payments.CreatePayment)
		}
	}

	return r
}
