package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"venue-booking-service/models"
)

func TestNewBookingMessage(t *testing.T) {
	event := models.BookingEvent{
		Type:          models.EventBookingPaymentSucceeded,
		BookingID:     7,
		PaymentID:     "pay-1",
		PaymentStatus: "paid",
		BookingStatus: "confirmed",
		Timestamp:     time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	msg, err := newBookingMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("7"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("booking.payment_succeeded"), msg.Headers[0].Value)

	var decoded models.BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestNewWriter_FlushesWithoutBatchDelay(t *testing.T) {
	w := newWriter([]string{"kafka-1:9092"}, "booking-events")

	assert.Equal(t, "booking-events", w.Topic)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	assert.Equal(t, 3, w.MaxAttempts)
	assert.Equal(t, DefaultPublishTimeout, w.WriteTimeout)
}

func TestPublishBookingEvent_UnreachableBrokerIsBounded(t *testing.T) {
	p := NewBookingEventProducer([]string{"127.0.0.1:1"}, "booking-events", zap.NewNop())
	p.timeout = 200 * time.Millisecond
	defer p.Close() //nolint:errcheck

	start := time.Now()
	err := p.PublishBookingEvent(context.Background(), models.BookingEvent{
		Type:      models.EventBookingCreated,
		BookingID: 7,
	})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
