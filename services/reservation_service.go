package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/metrics"
	"hotel-booking/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateReservationInput struct {
	RoomID       uint
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestName    string
	Phone        string
	UserID       uint
}

// ReservationService is the booking core. Creation holds the per-room lock
// for the whole check-then-insert transaction, so two overlapping requests
// for one room can never both pass the conflict check.
type ReservationService struct {
	DB    *gorm.DB
	Locks Locker
	Log   zerolog.Logger
	now   func() time.Time
}

func NewReservationService(db *gorm.DB, locks Locker, log zerolog.Logger) *ReservationService {
	return &ReservationService{
		DB:    db,
		Locks: locks,
		Log:   log.With().Str("component", "reservations").Logger(),
		now:   time.Now,
	}
}

// overlapping selects live reservations of roomID intersecting [checkIn, checkOut).
func overlapping(roomID uint, checkIn, checkOut time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"room_id = ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID, models.ReservationCancelled, checkOut, checkIn,
		)
	}
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperrors.Validation("checkInDate and checkOutDate are required")
	}
	if !checkOut.After(checkIn) {
		return apperrors.Validation("checkOutDate must be after checkInDate")
	}
	return nil
}

// findRoom resolves a bookable room, taking a row lock where the dialect has one.
func findRoom(tx *gorm.DB, roomID uint, forUpdate bool) (*models.Room, error) {
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	if err := q.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}
	return &room, nil
}

func (s *ReservationService) CreateReservation(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	guestName := strings.TrimSpace(in.GuestName)
	phone := strings.TrimSpace(in.Phone)
	if guestName == "" || phone == "" {
		return nil, apperrors.Validation("guestName and phone are required")
	}
	checkIn, checkOut := models.DateOnly(in.CheckInDate), models.DateOnly(in.CheckOutDate)

	unlock, err := s.Locks.Lock(ctx, roomLockKey(in.RoomID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var reservation *models.Reservation
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findRoom(tx, in.RoomID, true); err != nil {
			return err
		}
		if err := validateStay(checkIn, checkOut); err != nil {
			return err
		}

		var conflicts int64
		if err := tx.Model(&models.Reservation{}).
			Scopes(overlapping(in.RoomID, checkIn, checkOut)).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if conflicts > 0 {
			return apperrors.ErrDateConflict
		}

		reservation = &models.Reservation{
			GuestName:    guestName,
			Phone:        phone,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			RoomID:       in.RoomID,
			UserID:       in.UserID,
			Status:       models.ReservationPending,
		}
		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDateConflict) {
			metrics.IncReservation(metrics.ReservationConflict)
			s.Log.Info().Uint("room_id", in.RoomID).
				Str("check_in", checkIn.Format(models.DateLayout)).
				Str("check_out", checkOut.Format(models.DateLayout)).
				Msg("reservation rejected: dates taken")
		}
		return nil, err
	}

	metrics.IncReservation(metrics.ReservationCreated)
	s.Log.Info().
		Uint("reservation_id", reservation.ID).
		Uint("room_id", reservation.RoomID).
		Uint("user_id", reservation.UserID).
		Msg("reservation created")
	return reservation, nil
}

// CancelReservation cancels a reservation owned by the caller; admins may
// cancel any reservation. The status change is a conditional update, so
// CancelledAt is written at most once.
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID uint, who Identity) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", reservationID)
		if !who.IsAdmin() {
			q = q.Where("user_id = ?", who.UserID)
		}
		if err := q.First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReservationNotFound
			}
			return fmt.Errorf("get reservation %d: %w", reservationID, err)
		}
		if reservation.IsCancelled() {
			return apperrors.ErrAlreadyCancelled
		}

		now := s.now().UTC()
		res := tx.Model(&models.Reservation{}).
			Where("id = ? AND status <> ?", reservation.ID, models.ReservationCancelled).
			Updates(map[string]interface{}{
				"status":       models.ReservationCancelled,
				"cancelled_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("cancel reservation %d: %w", reservationID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrAlreadyCancelled
		}

		return tx.First(&reservation, reservation.ID).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.IncReservation(metrics.ReservationCancelled)
	s.Log.Info().Uint("reservation_id", reservation.ID).Uint("by_user_id", who.UserID).Msg("reservation cancelled")
	return &reservation, nil
}

// ListReservations returns the user's reservations in creation order.
func (s *ReservationService) ListReservations(ctx context.Context, userID uint) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// CheckAvailability reports whether the room is free for [checkIn, checkOut).
func (s *ReservationService) CheckAvailability(ctx context.Context, hotelID, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	checkIn, checkOut = models.DateOnly(checkIn), models.DateOnly(checkOut)
	db := s.DB.WithContext(ctx)

	var room models.Room
	if err := db.Where("id = ? AND hotel_id = ?", roomID, hotelID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrRoomNotFound
		}
		return false, fmt.Errorf("get room %d: %w", roomID, err)
	}
	if err := validateStay(checkIn, checkOut); err != nil {
		return false, err
	}

	var conflicts int64
	if err := db.Model(&models.Reservation{}).
		Scopes(overlapping(roomID, checkIn, checkOut)).
		Count(&conflicts).Error; err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return conflicts == 0, nil
}
