package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotel-booking/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor charges card sources through the Stripe Charges API.
// Network retries are off: a failed charge is reported, never replayed.
type StripeProcessor struct {
	api *client.API
}

func NewStripeProcessor(secretKey string, timeout time.Duration) *StripeProcessor {
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	})

	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeProcessor{api: api}
}

func (p *StripeProcessor) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountMinor),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	if err := params.SetSource(req.Source); err != nil {
		return nil, fmt.Errorf("set charge source: %w", err)
	}

	ch, err := p.api.Charges.New(params)
	if err != nil {
		return nil, err
	}
	if ch.Status == stripe.ChargeStatusFailed {
		return nil, fmt.Errorf("charge %s failed: %s", ch.ID, ch.FailureMessage)
	}

	return &ChargeResult{ChargeID: ch.ID, Method: models.PaymentMethodStripe}, nil
}
