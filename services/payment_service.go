package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/metrics"
	"hotel-booking/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ChargeRequest is what the processor sees. Amount is in minor units (cents).
type ChargeRequest struct {
	AmountMinor    int64
	Currency       string
	Source         string
	Description    string
	IdempotencyKey string
}

type ChargeResult struct {
	ChargeID string
	Method   string
}

// Processor charges an external payment service.
type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type ChargeInput struct {
	ReservationID uint
	Caller        Identity
	Amount        float64
	Currency      string
	Source        string
}

// PaymentService charges the processor and records exactly one Payment per
// reservation. Nothing is written when the processor fails.
type PaymentService struct {
	DB        *gorm.DB
	Processor Processor
	Locks     Locker
	Timeout   time.Duration
	Log       zerolog.Logger
	now       func() time.Time
}

func NewPaymentService(db *gorm.DB, processor Processor, locks Locker, timeout time.Duration, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		DB:        db,
		Processor: processor,
		Locks:     locks,
		Timeout:   timeout,
		Log:       log.With().Str("component", "payments").Logger(),
		now:       time.Now,
	}
}

// MaxAmountMinor is the largest charge the decimal(10,2) amount column holds.
const MaxAmountMinor int64 = 99_999_999_99

// ToMinorUnits converts a major-unit amount to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// HasCentPrecision reports whether amount has at most two fractional digits.
func HasCentPrecision(amount float64) bool {
	scaled := amount * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-4
}

// ValidAmount reports whether amount can be charged and stored exactly.
func ValidAmount(amount float64) bool {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return false
	}
	if !HasCentPrecision(amount) {
		return false
	}
	minor := ToMinorUnits(amount)
	return minor > 0 && minor <= MaxAmountMinor
}

func validateCharge(in ChargeInput) error {
	if in.ReservationID == 0 {
		return apperrors.Validation("reservationId is required")
	}
	if in.Amount <= 0 || math.IsNaN(in.Amount) || ToMinorUnits(in.Amount) <= 0 {
		return apperrors.Validation("amount must be positive")
	}
	if !HasCentPrecision(in.Amount) {
		return apperrors.Validation("amount must have at most 2 decimal places")
	}
	if !ValidAmount(in.Amount) {
		return apperrors.Validation("amount must not exceed 99999999.99")
	}
	if len(in.Currency) != 3 {
		return apperrors.Validation("currency must be a 3-letter ISO code")
	}
	if strings.TrimSpace(in.Source) == "" {
		return apperrors.Validation("payment source is required")
	}
	return nil
}

func (s *PaymentService) loadPayable(ctx context.Context, in ChargeInput) (*models.Reservation, error) {
	db := s.DB.WithContext(ctx)

	q := db.Where("id = ?", in.ReservationID)
	if !in.Caller.IsAdmin() {
		q = q.Where("user_id = ?", in.Caller.UserID)
	}
	var reservation models.Reservation
	if err := q.First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation %d: %w", in.ReservationID, err)
	}
	if reservation.IsCancelled() {
		return nil, apperrors.ErrReservationCancelled
	}

	var existing int64
	if err := db.Model(&models.Payment{}).Where("reservation_id = ?", reservation.ID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.ErrAlreadyPaid
	}
	return &reservation, nil
}

func (s *PaymentService) Charge(ctx context.Context, in ChargeInput) (*models.Payment, error) {
	in.Currency = strings.ToLower(strings.TrimSpace(in.Currency))
	if err := validateCharge(in); err != nil {
		return nil, err
	}

	unlock, err := s.Locks.Lock(ctx, paymentLockKey(in.ReservationID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	reservation, err := s.loadPayable(ctx, in)
	if err != nil {
		return nil, err
	}

	minor := ToMinorUnits(in.Amount)
	chargeCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	result, err := s.Processor.Charge(chargeCtx, ChargeRequest{
		AmountMinor:    minor,
		Currency:       in.Currency,
		Source:         in.Source,
		Description:    fmt.Sprintf("Payment for reservation %d", reservation.ID),
		IdempotencyKey: fmt.Sprintf("reservation-%d-%s-%d", reservation.ID, in.Source, minor),
	})
	if err != nil {
		metrics.IncPayment(metrics.PaymentProcessorError)
		s.Log.Warn().Err(err).Uint("reservation_id", reservation.ID).Msg("processor charge failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.ErrProcessor.WithMessage("payment processor timed out").Wrap(err)
		}
		return nil, apperrors.ErrProcessor.Wrap(err)
	}

	method := result.Method
	if method == "" {
		method = models.PaymentMethodStripe
	}
	payment := &models.Payment{
		ReservationID:     reservation.ID,
		Amount:            float64(minor) / 100,
		Currency:          in.Currency,
		PaymentMethod:     method,
		ProcessorChargeID: result.ChargeID,
		Status:            models.PaymentCompleted,
		RefundStatus:      models.RefundPending,
		PaymentDate:       s.now().UTC(),
	}
	// the caller's context may already be gone; the charge happened, so try to record it
	if err := s.DB.WithContext(context.WithoutCancel(ctx)).Create(payment).Error; err != nil {
		metrics.IncPayment(metrics.PaymentPersistError)
		s.Log.Error().Err(err).
			Uint("reservation_id", reservation.ID).
			Str("charge_id", result.ChargeID).
			Int64("amount_minor", minor).
			Msg("charge captured but payment not recorded")
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyPaid.Wrap(err)
		}
		return nil, fmt.Errorf("record payment for charge %s: %w", result.ChargeID, err)
	}

	metrics.IncPayment(metrics.PaymentCompleted)
	s.Log.Info().
		Uint("payment_id", payment.ID).
		Uint("reservation_id", reservation.ID).
		Str("charge_id", result.ChargeID).
		Msg("payment captured")
	return payment, nil
}
