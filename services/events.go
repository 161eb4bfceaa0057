package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
)

// EventPublisher delivers booking lifecycle events to a broker.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}

// SNSEventPublisher publishes booking events as JSON to one SNS topic. The
// event type is also sent as the event_type attribute for subscription
// filter policies.
type SNSEventPublisher struct {
	topic aws_pkg.TopicPublisher
}

func NewSNSEventPublisher(topic aws_pkg.TopicPublisher) *SNSEventPublisher {
	return &SNSEventPublisher{topic: topic}
}

func (p *SNSEventPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}
	_, err = p.topic.Publish(ctx, b, map[string]string{"event_type": event.Type})
	return err
}

// publishEvent is fire-and-forget: failures are logged, never returned.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, event models.BookingEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishBookingEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish booking event",
			zap.String("type", event.Type),
			zap.Int64("booking_id", event.BookingID),
			zap.Error(err),
		)
		return
	}
	logger.Debug("Published booking event", zap.String("type", event.Type), zap.Int64("booking_id", event.BookingID))
}

func recordCount(ctx context.Context, metrics aws_pkg.CountRecorder, name string, dims map[string]string) {
	if metrics == nil {
		return
	}
	_ = metrics.RecordCount(ctx, name, dims)
}
