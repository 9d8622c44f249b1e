package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(reservations.WithLabelValues(ReservationConflict))
	IncReservation(ReservationConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(reservations.WithLabelValues(ReservationConflict)))

	IncPayment(PaymentCompleted)
	assert.GreaterOrEqual(t, testutil.ToFloat64(payments.WithLabelValues(PaymentCompleted)), 1.0)

	ObserveHTTP("GET", "/api/v1/hotels", "200", 0.01)
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/v1/hotels", "200")), 1.0)
}
