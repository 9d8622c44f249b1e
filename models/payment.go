package models

import "time"

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"

	RefundPending   = "pending"
	RefundProcessed = "processed"
	RefundFailed    = "failed"

	PaymentMethodStripe = "stripe"
)

// Payment is written only after the processor accepted the charge. The unique
// index on reservation_id allows a single payment per reservation.
type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReservationID     uint      `gorm:"column:reservation_id;not null;uniqueIndex" json:"reservationId"`
	Amount            float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency          string    `gorm:"size:3;not null" json:"currency"`
	PaymentMethod     string    `gorm:"column:payment_method;size:32;not null" json:"paymentMethod"`
	ProcessorChargeID string    `gorm:"column:processor_charge_id;size:128;index" json:"processorChargeId"`
	Status            string    `gorm:"size:16;not null;default:pending" json:"status"`
	RefundStatus      string    `gorm:"column:refund_status;size:16;not null;default:pending" json:"refundStatus"`
	PaymentDate       time.Time `gorm:"column:payment_date;not null" json:"paymentDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
