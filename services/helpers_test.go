package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDatabase(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

func createTestHotel(t *testing.T, db *gorm.DB, name string, price, rating float64, amenities ...string) models.Hotel {
	t.Helper()
	hotel, err := NewHotelService(db, zerolog.Nop()).CreateHotel(context.Background(), HotelInput{
		Name:          name,
		ImageURL:      "https://img.example/" + name + ".jpg",
		Address:       name + " street 1",
		PricePerNight: price,
		Rating:        rating,
		Amenities:     amenities,
	})
	require.NoError(t, err)
	return *hotel
}

func createTestRoom(t *testing.T, db *gorm.DB, hotelID uint, number string) models.Room {
	t.Helper()
	room, err := NewHotelService(db, zerolog.Nop()).AddRoom(context.Background(), hotelID, RoomInput{
		RoomNumber:    number,
		Capacity:      2,
		PricePerNight: 120,
		Availability:  true,
	})
	require.NoError(t, err)
	return *room
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newTestReservationService(db *gorm.DB) *ReservationService {
	return NewReservationService(db, NewLocalLocker(5*time.Second), zerolog.Nop())
}

func reserve(t *testing.T, svc *ReservationService, roomID, userID uint, in, out string) (*models.Reservation, error) {
	t.Helper()
	return svc.CreateReservation(context.Background(), CreateReservationInput{
		RoomID:       roomID,
		CheckInDate:  day(t, in),
		CheckOutDate: day(t, out),
		GuestName:    "Juan Perez",
		Phone:        "123456789",
		UserID:       userID,
	})
}
