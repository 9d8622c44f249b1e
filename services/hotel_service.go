package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/apperrors"
	"hotel-booking/models"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HotelInput struct {
	Name               string
	ImageURL           string
	Address            string
	PricePerNight      float64
	Rating             float64
	Amenities          []string
	CancellationPolicy string
}

// HotelFilter predicates are optional and combined with AND.
type HotelFilter struct {
	Address   string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Amenities string
}

type RoomInput struct {
	RoomNumber    string
	Capacity      int
	PricePerNight float64
	Availability  bool
}

// RoomUpdate changes only the fields that are set.
type RoomUpdate struct {
	RoomNumber    *string
	Capacity      *int
	PricePerNight *float64
	Availability  *bool
}

// HotelService is the catalog store. Role checks happen before it is called.
type HotelService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewHotelService(db *gorm.DB, log zerolog.Logger) *HotelService {
	return &HotelService{DB: db, Log: log.With().Str("component", "catalog").Logger()}
}

func (s *HotelService) CreateHotel(ctx context.Context, in HotelInput) (*models.Hotel, error) {
	amenities := make([]string, 0, len(in.Amenities))
	for _, a := range in.Amenities {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}

	hotel := &models.Hotel{
		Name:               strings.TrimSpace(in.Name),
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Address:            strings.TrimSpace(in.Address),
		PricePerNight:      in.PricePerNight,
		Rating:             in.Rating,
		Amenities:          datatypes.JSONSlice[string](amenities),
		CancellationPolicy: in.CancellationPolicy,
	}
	if err := s.DB.WithContext(ctx).Create(hotel).Error; err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.Log.Info().Uint("hotel_id", hotel.ID).Msg("hotel created")
	return hotel, nil
}

// likeEscaper escapes LIKE wildcards with '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a substring match for a LIKE ... ESCAPE '!' clause.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func (s *HotelService) ListHotels(ctx context.Context, f HotelFilter) ([]models.Hotel, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperrors.Validation("minPrice must not exceed maxPrice")
	}

	q := s.DB.WithContext(ctx).Model(&models.Hotel{})
	if strings.TrimSpace(f.Address) != "" {
		q = q.Where("LOWER(address) LIKE ? ESCAPE '!'", likePattern(f.Address))
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_night >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_night <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("rating >= ?", *f.MinRating)
	}
	if strings.TrimSpace(f.Amenities) != "" {
		// amenities is a JSON array column; match against its text form
		column := "LOWER(amenities)"
		if s.DB.Dialector.Name() == "postgres" {
			column = "LOWER(amenities::text)"
		}
		q = q.Where(column+" LIKE ? ESCAPE '!'", likePattern(f.Amenities))
	}

	hotels := []models.Hotel{}
	if err := q.Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (s *HotelService) GetHotelWithRooms(ctx context.Context, hotelID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&hotel, hotelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHotelNotFound
		}
		return nil, fmt.Errorf("get hotel %d: %w", hotelID, err)
	}
	if hotel.Rooms == nil {
		hotel.Rooms = []models.Room{}
	}
	return &hotel, nil
}

func (s *HotelService) hotelExists(tx *gorm.DB, hotelID uint) error {
	var hotel models.Hotel
	if err := tx.Select("id").First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHotelNotFound
		}
		return fmt.Errorf("get hotel %d: %w", hotelID, err)
	}
	return nil
}

func (s *HotelService) AddRoom(ctx context.Context, hotelID uint, in RoomInput) (*models.Room, error) {
	db := s.DB.WithContext(ctx)
	if err := s.hotelExists(db, hotelID); err != nil {
		return nil, err
	}

	room := &models.Room{
		HotelID:       hotelID,
		RoomNumber:    strings.TrimSpace(in.RoomNumber),
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		Availability:  in.Availability,
	}
	if err := db.Create(room).Error; err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.Log.Info().Uint("hotel_id", hotelID).Uint("room_id", room.ID).Msg("room added")
	return room, nil
}

// findRoom loads a room only when it belongs to the given hotel.
func (s *HotelService) findRoom(tx *gorm.DB, hotelID, roomID uint) (*models.Room, error) {
	if err := s.hotelExists(tx, hotelID); err != nil {
		return nil, err
	}
	var room models.Room
	if err := tx.Where("id = ? AND hotel_id = ?", roomID, hotelID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}
	return &room, nil
}

func (s *HotelService) UpdateRoom(ctx context.Context, hotelID, roomID uint, upd RoomUpdate) (*models.Room, error) {
	var room *models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.findRoom(tx, hotelID, roomID)
		if err != nil {
			return err
		}

		// map updates so false / zero values are written too
		changes := map[string]interface{}{}
		if upd.RoomNumber != nil {
			changes["room_number"] = strings.TrimSpace(*upd.RoomNumber)
		}
		if upd.Capacity != nil {
			changes["capacity"] = *upd.Capacity
		}
		if upd.PricePerNight != nil {
			changes["price_per_night"] = *upd.PricePerNight
		}
		if upd.Availability != nil {
			changes["availability"] = *upd.Availability
		}
		if len(changes) > 0 {
			if err := tx.Model(found).Updates(changes).Error; err != nil {
				return fmt.Errorf("update room %d: %w", roomID, err)
			}
		}

		room, err = s.findRoom(tx, hotelID, roomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info().Uint("hotel_id", hotelID).Uint("room_id", roomID).Msg("room updated")
	return room, nil
}

// DeleteRoom soft-deletes the room; its reservations keep their room_id.
func (s *HotelService) DeleteRoom(ctx context.Context, hotelID, roomID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.findRoom(tx, hotelID, roomID)
		if err != nil {
			return err
		}
		if err := tx.Delete(room).Error; err != nil {
			return fmt.Errorf("delete room %d: %w", roomID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Log.Info().Uint("hotel_id", hotelID).Uint("room_id", roomID).Msg("room deleted")
	return nil
}
