package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"venue-booking-service/models"
)

// BookingEventProducer writes booking events keyed by booking id, so all
// events of one booking land on the same partition in order.
type BookingEventProducer struct {
	writer  *kafka.Writer
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

// DefaultPublishTimeout bounds one publish. Events are sent on the request
// path, including the webhook acknowledgement.
const DefaultPublishTimeout = 2 * time.Second

func NewBookingEventProducer(brokers []string, topic string, logger *zap.Logger) *BookingEventProducer {
	logger.Info("Kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &BookingEventProducer{
		writer:  newWriter(brokers, topic),
		topic:   topic,
		timeout: DefaultPublishTimeout,
		logger:  logger,
	}
}

// newWriter flushes each event almost immediately instead of waiting for the
// default one-second batch window.
func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		WriteTimeout: DefaultPublishTimeout,
	}
}

func (p *BookingEventProducer) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	msg, err := newBookingMessage(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	p.logger.Debug("Sent booking event", zap.String("type", event.Type), zap.Int64("booking_id", event.BookingID))
	return nil
}

func newBookingMessage(event models.BookingEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

func (p *BookingEventProducer) Close() error {
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed")
	return err
}
