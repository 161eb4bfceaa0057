package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"venue-booking-service/models"
	"venue-booking-service/services"
)

func TestSNSEventPublisher_PublishesJSON(t *testing.T) {
	topic := &mockTopic{}
	pub := services.NewSNSEventPublisher(topic)

	err := pub.PublishBookingEvent(context.Background(), models.BookingEvent{
		Type:          models.EventBookingCreated,
		BookingID:     7,
		VenueID:       1,
		PaymentStatus: "pending",
		BookingStatus: "pending",
		TotalAmount:   51500,
		Timestamp:     time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"event_type": "booking.created"}, topic.attributes)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(topic.message, &got))
	assert.Equal(t, "booking.created", got["type"])
	assert.EqualValues(t, 7, got["booking_id"])
	assert.EqualValues(t, 51500, got["total_amount"])
}

func TestSNSEventPublisher_ReturnsPublishError(t *testing.T) {
	topic := &mockTopic{publishErr: errDB}
	pub := services.NewSNSEventPublisher(topic)

	err := pub.PublishBookingEvent(context.Background(), models.BookingEvent{Type: models.EventBookingCreated, BookingID: 7})
	assert.ErrorIs(t, err, errDB)
}
