package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-booking/apperrors"
	"hotel-booking/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*ChargeResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type paymentFixture struct {
	db          *gorm.DB
	processor   *mockProcessor
	svc         *PaymentService
	reservation *models.Reservation
	owner       Identity
}

func newPaymentFixture(t *testing.T, timeout time.Duration) *paymentFixture {
	t.Helper()
	db := newTestDB(t)
	hotel := createTestHotel(t, db, "Main", 100, 4)
	room := createTestRoom(t, db, hotel.ID, "101")
	owner := Identity{UserID: 5, Role: models.RoleGuest}
	r, err := reserve(t, newTestReservationService(db), room.ID, owner.UserID, "2025-07-01", "2025-07-03")
	require.NoError(t, err)

	processor := &mockProcessor{}
	return &paymentFixture{
		db:          db,
		processor:   processor,
		svc:         NewPaymentService(db, processor, NewLocalLocker(time.Second), timeout, zerolog.Nop()),
		reservation: r,
		owner:       owner,
	}
}

func (f *paymentFixture) input(amount float64) ChargeInput {
	return ChargeInput{
		ReservationID: f.reservation.ID,
		Caller:        f.owner,
		Amount:        amount,
		Currency:      "USD",
		Source:        "tok_visa",
	}
}

func (f *paymentFixture) paymentCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Payment{}).Count(&n).Error)
	return n
}

func TestChargeSuccess(t *testing.T) {
	f := newPaymentFixture(t, time.Second)
	f.processor.On("Charge", mock.Anything, mock.MatchedBy(func(req ChargeRequest) bool {
		return req.AmountMinor == 24050 && req.Currency == "usd" && req.Source == "tok_visa" && req.IdempotencyKey != ""
	})).Return(&ChargeResult{ChargeID: "ch_123", Method: models.PaymentMethodStripe}, nil).Once()

	payment, err := f.svc.Charge(context.Background(), f.input(240.50))
	require.NoError(t, err)
	assert.Equal(t, f.reservation.ID, payment.ReservationID)
	assert.Equal(t, "ch_123", payment.ProcessorChargeID)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.Equal(t, models.RefundPending, payment.RefundStatus)
	assert.Equal(t, "usd", payment.Currency)
	assert.EqualValues(t, 1, f.paymentCount(t))

	_, err = f.svc.Charge(context.Background(), f.input(240.50))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPaid)
	assert.EqualValues(t, 1, f.paymentCount(t))

	f.processor.AssertNumberOfCalls(t, "Charge", 1)
}

func TestChargeProcessorFailureWritesNothing(t *testing.T) {
	f := newPaymentFixture(t, time.Second)
	f.processor.On("Charge", mock.Anything, mock.Anything).Return(nil, errors.New("card declined")).Once()

	_, err := f.svc.Charge(context.Background(), f.input(100))
	assert.ErrorIs(t, err, apperrors.ErrProcessor)
	assert.Zero(t, f.paymentCount(t))
	f.processor.AssertExpectations(t)
}

func TestChargeProcessorTimeout(t *testing.T) {
	f := newPaymentFixture(t, 20*time.Millisecond)
	f.processor.On("Charge", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded).Once()

	_, err := f.svc.Charge(context.Background(), f.input(100))
	require.ErrorIs(t, err, apperrors.ErrProcessor)
	assert.Contains(t, apperrors.As(err).Message, "timed out")
	assert.Zero(t, f.paymentCount(t))
}

func TestChargeRejectedBeforeProcessor(t *testing.T) {
	f := newPaymentFixture(t, time.Second)
	ctx := context.Background()

	t.Run("NotOwner", func(t *testing.T) {
		in := f.input(100)
		in.Caller = Identity{UserID: 99, Role: models.RoleGuest}
		_, err := f.svc.Charge(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	})

	t.Run("UnknownReservation", func(t *testing.T) {
		in := f.input(100)
		in.ReservationID = 9999
		_, err := f.svc.Charge(ctx, in)
		assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		for _, in := range []ChargeInput{
			{ReservationID: f.reservation.ID, Caller: f.owner, Amount: 0, Currency: "usd", Source: "tok"},
			{ReservationID: f.reservation.ID, Caller: f.owner, Amount: 10, Currency: "dollars", Source: "tok"},
			{ReservationID: f.reservation.ID, Caller: f.owner, Amount: 10, Currency: "usd", Source: " "},
		} {
			_, err := f.svc.Charge(ctx, in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		}
	})

	t.Run("AmountNotChargeable", func(t *testing.T) {
		for _, amount := range []float64{10.005, 0.001, 5e9, 100_000_000} {
			_, err := f.svc.Charge(ctx, f.input(amount))
			assert.ErrorIs(t, err, apperrors.ErrValidation, "amount %v", amount)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		_, err := newTestReservationService(f.db).CancelReservation(ctx, f.reservation.ID, f.owner)
		require.NoError(t, err)
		_, err = f.svc.Charge(ctx, f.input(100))
		assert.ErrorIs(t, err, apperrors.ErrReservationCancelled)
	})

	f.processor.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	assert.Zero(t, f.paymentCount(t))
}

func TestChargeRecordsChargedAmount(t *testing.T) {
	f := newPaymentFixture(t, time.Second)
	f.processor.On("Charge", mock.Anything, mock.MatchedBy(func(req ChargeRequest) bool {
		return req.AmountMinor == MaxAmountMinor
	})).Return(&ChargeResult{ChargeID: "ch_max"}, nil).Once()

	payment, err := f.svc.Charge(context.Background(), f.input(99_999_999.99))
	require.NoError(t, err)
	assert.Equal(t, MaxAmountMinor, ToMinorUnits(payment.Amount))

	var stored models.Payment
	require.NoError(t, f.db.First(&stored, payment.ID).Error)
	assert.Equal(t, payment.Amount, stored.Amount)
	assert.Equal(t, models.PaymentMethodStripe, stored.PaymentMethod)
	f.processor.AssertExpectations(t)
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{240.50, true},
		{19.99, true},
		{0.01, true},
		{99_999_999.99, true},
		{10.005, false},
		{0.001, false},
		{0, false},
		{-5, false},
		{100_000_000, false},
		{5e9, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidAmount(tt.amount), "amount %v", tt.amount)
	}
}

func TestToMinorUnits(t *testing.T) {
	assert.EqualValues(t, 24050, ToMinorUnits(240.50))
	assert.EqualValues(t, 1999, ToMinorUnits(19.99))
	assert.EqualValues(t, 10, ToMinorUnits(0.1))
	assert.EqualValues(t, 0, ToMinorUnits(0.004))
}
