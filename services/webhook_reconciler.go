package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
	"venue-booking-service/repository"
)

const (
	MessageNoBookingID      = "No booking_id in metadata"
	MessageWebhookProcessed = "Webhook processed"
)

// ReconcileResult is the acknowledgement returned to the gateway.
type ReconcileResult struct {
	Message   string
	BookingID int64
	Applied   bool
}

// WebhookReconciler applies gateway payment notifications to bookings.
type WebhookReconciler interface {
	Reconcile(ctx context.Context, payload []byte) (*ReconcileResult, error)
}

type webhookReconcilerImpl struct {
	bookings      repository.BookingRepository
	notifications repository.NotificationRepository
	publisher     EventPublisher
	metrics       aws_pkg.CountRecorder
	logger        *zap.Logger
	now           func() time.Time
}

func NewWebhookReconciler(
	bookings repository.BookingRepository,
	notifications repository.NotificationRepository,
	publisher EventPublisher,
	metrics aws_pkg.CountRecorder,
	logger *zap.Logger,
) WebhookReconciler {
	return &webhookReconcilerImpl{
		bookings:      bookings,
		notifications: notifications,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// Reconcile only fails for malformed JSON and for database errors. Unknown
// bookings, missing metadata and statuses that cause no transition are
// acknowledged so the gateway stops redelivering. A database error is
// returned so the gateway redelivers; the conditional update makes the
// redelivery safe.
func (r *webhookReconcilerImpl) Reconcile(ctx context.Context, payload []byte) (*ReconcileResult, error) {
	var event models.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, apperrors.Validation("Invalid JSON")
	}

	status := event.Object.Status
	bookingID, ok := event.Object.BookingID()
	if !ok {
		r.logger.Warn("Webhook without booking_id",
			zap.String("payment_id", event.Object.ID),
			zap.String("status", status),
		)
		recordCount(ctx, r.metrics, aws_pkg.MetricWebhooksIgnored, map[string]string{"Reason": "no_booking_id"})
		r.audit(ctx, &event, nil, false, payload)
		return &ReconcileResult{Message: MessageNoBookingID}, nil
	}

	applied := false
	outcome, actionable := models.ParsePaymentOutcome(status)
	if actionable && r.alreadyApplied(ctx, event.Object.ID, status) {
		r.logger.Info("Duplicate webhook delivery",
			zap.Int64("booking_id", bookingID),
			zap.String("payment_id", event.Object.ID),
			zap.String("status", status),
		)
		recordCount(ctx, r.metrics, aws_pkg.MetricWebhooksIgnored, map[string]string{"Reason": "duplicate"})
		r.audit(ctx, &event, &bookingID, false, payload)
		return &ReconcileResult{Message: MessageWebhookProcessed, BookingID: bookingID}, nil
	}
	if actionable {
		rows, err := r.bookings.UpdatePaymentOutcome(ctx, bookingID, outcome)
		if err != nil {
			r.logger.Error("Failed to apply payment outcome",
				zap.Int64("booking_id", bookingID),
				zap.String("status", status),
				zap.Error(err),
			)
			return nil, apperrors.Internal("Failed to update booking", err)
		}
		applied = rows > 0
	}

	r.audit(ctx, &event, &bookingID, applied, payload)

	fields := []zap.Field{
		zap.Int64("booking_id", bookingID),
		zap.String("payment_id", event.Object.ID),
		zap.String("status", status),
		zap.Bool("applied", applied),
	}
	if !applied {
		r.logger.Info("Webhook acknowledged without transition", fields...)
		return &ReconcileResult{Message: MessageWebhookProcessed, BookingID: bookingID}, nil
	}
	r.logger.Info("Payment outcome applied", fields...)

	target := outcome.Target()
	paymentStatus, bookingStatus := target.Columns()
	eventType, metric := models.EventBookingPaymentSucceeded, aws_pkg.MetricPaymentSucceeded
	if outcome == models.OutcomeCanceled {
		eventType, metric = models.EventBookingPaymentFailed, aws_pkg.MetricPaymentFailed
	}
	recordCount(ctx, r.metrics, metric, map[string]string{"Service": "booking"})
	publishEvent(ctx, r.publisher, r.logger, models.BookingEvent{
		Type:          eventType,
		BookingID:     bookingID,
		PaymentID:     event.Object.ID,
		PaymentStatus: paymentStatus,
		BookingStatus: bookingStatus,
		Timestamp:     r.now().UTC(),
	})

	return &ReconcileResult{Message: MessageWebhookProcessed, BookingID: bookingID, Applied: true}, nil
}

// alreadyApplied reports whether a notification with the same payment id and
// status has already changed a booking. Lookup failures fall through to the
// conditional update.
func (r *webhookReconcilerImpl) alreadyApplied(ctx context.Context, paymentID, status string) bool {
	if r.notifications == nil || paymentID == "" {
		return false
	}
	prior, err := r.notifications.FindByGatewayPaymentID(ctx, paymentID)
	if err != nil {
		r.logger.Warn("Payment notification lookup failed",
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		return false
	}
	for _, n := range prior {
		if n.Applied && n.GatewayStatus == status {
			return true
		}
	}
	return false
}

func (r *webhookReconcilerImpl) audit(ctx context.Context, event *models.WebhookEvent, bookingID *int64, applied bool, payload []byte) {
	if r.notifications == nil {
		return
	}
	n := &models.PaymentNotification{
		GatewayPaymentID: event.Object.ID,
		Event:            event.Event,
		GatewayStatus:    event.Object.Status,
		BookingID:        bookingID,
		Applied:          applied,
		Payload:          datatypes.JSON(payload),
	}
	if err := r.notifications.Create(ctx, n); err != nil {
		r.logger.Warn("Failed to store payment notification",
			zap.String("payment_id", event.Object.ID),
			zap.Error(err),
		)
	}
}
