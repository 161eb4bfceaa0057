package providers

import (
	"context"

	"venue-booking-service/models"
)

// PaymentGateway creates payments at an external provider.
type PaymentGateway interface {
	// CreatePayment issues one payment creation call. It never retries.
	CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)

	// Configured reports whether credentials are present.
	Configured() bool
}
