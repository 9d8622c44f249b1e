package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/logging"
	"hotel-booking/metrics"
	"hotel-booking/middleware"
	"hotel-booking/routes"
	"hotel-booking/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	logger, logCloser, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("init logger")
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	log := *logger

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.SeedAdmin(startupCtx, db, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	// Redis locks when configured, otherwise locks only cover this process
	var locks services.Locker = services.NewLocalLocker(cfg.Locks.WaitTimeout)
	if cfg.Redis.Address != "" {
		rdb := services.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err := services.PingRedis(startupCtx, rdb); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Address).Msg("redis unavailable")
		}
		defer rdb.Close()
		locks = services.NewRedisLocker(rdb, cfg.Locks.TTL, cfg.Locks.WaitTimeout, log)
		log.Info().Str("addr", cfg.Redis.Address).Msg("using redis locks")
	}
	cancelStartup()

	metrics.Register()

	authService := services.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	hotelService := services.NewHotelService(db, log)
	reservationService := services.NewReservationService(db, locks, log)
	paymentService := services.NewPaymentService(
		db,
		services.NewStripeProcessor(cfg.Payments.StripeSecretKey, cfg.Payments.ProcessorTimeout),
		locks,
		cfg.Payments.ProcessorTimeout,
		log,
	)

	router := routes.SetupRouter(routes.Deps{
		DB:           db,
		Log:          log,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		Verifier:     authService,
		AuthLimiter:  middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRPS, cfg.HTTP.AuthRateLimitBurst),
		Auth:         controllers.NewAuthController(authService),
		Hotels:       controllers.NewHotelController(hotelService),
		Rooms:        controllers.NewRoomController(hotelService, reservationService),
		Reservations: controllers.NewReservationController(reservationService),
		Payments:     controllers.NewPaymentController(paymentService),
	})

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// leaves room for the payment processor round trip
		WriteTimeout: cfg.Payments.ProcessorTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server stopped gracefully")
}
