package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
	"venue-booking-service/providers"
)

// PaymentService initiates gateway payments for bookings.
type PaymentService interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResult, error)
}

// PaymentDefaults fill optional request fields.
type PaymentDefaults struct {
	Description string
	ReturnURL   string
}

type paymentServiceImpl struct {
	gateway  providers.PaymentGateway
	defaults PaymentDefaults
	metrics  aws_pkg.CountRecorder
	logger   *zap.Logger
	newKey   func() string
}

func NewPaymentService(
	gateway providers.PaymentGateway,
	defaults PaymentDefaults,
	metrics aws_pkg.CountRecorder,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		gateway:  gateway,
		defaults: defaults,
		metrics:  metrics,
		logger:   logger,
		newKey:   uuid.NewString,
	}
}

// CreatePayment does not check that the booking exists; the booking id is
// only correlation metadata echoed back by the webhook. Each call gets its
// own idempotence key, so a retry by the client creates a new payment.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResult, error) {
	if req == nil || req.BookingID <= 0 || req.Amount <= 0 {
		return nil, apperrors.Validation("Missing required fields: bookingId, amount")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = s.defaults.Description
	}
	returnURL := strings.TrimSpace(req.ReturnURL)
	if returnURL == "" {
		returnURL = s.defaults.ReturnURL
	}

	payReq := models.PaymentRequest{
		BookingID:      int64(req.BookingID),
		Amount:         req.Amount,
		Currency:       models.Currency,
		Description:    description,
		ReturnURL:      returnURL,
		IdempotenceKey: s.newKey(),
	}

	res, err := s.gateway.CreatePayment(ctx, payReq)
	if err != nil {
		appErr := apperrors.From(err)
		fields := []zap.Field{
			zap.Int64("booking_id", payReq.BookingID),
			zap.String("idempotence_key", payReq.IdempotenceKey),
			zap.Int("status", appErr.Code),
			zap.Error(err),
		}
		if appErr.Kind == apperrors.KindGateway {
			s.logger.Warn("Payment gateway rejected request", fields...)
			recordCount(ctx, s.metrics, aws_pkg.MetricPaymentGatewayError, map[string]string{"Status": strconv.Itoa(appErr.Code)})
		} else {
			s.logger.Error("Payment creation failed", fields...)
		}
		return nil, err
	}

	s.logger.Info("Payment created",
		zap.Int64("booking_id", payReq.BookingID),
		zap.String("payment_id", res.PaymentID),
		zap.String("status", res.Status),
	)
	recordCount(ctx, s.metrics, aws_pkg.MetricPaymentsInitiated, map[string]string{"Service": "booking"})
	return res, nil
}
