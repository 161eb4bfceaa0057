package models

import "time"

const (
	EventBookingCreated          = "booking.created"
	EventBookingPaymentSucceeded = "booking.payment_succeeded"
	EventBookingPaymentFailed    = "booking.payment_failed"
)

// BookingEvent is published to SNS or Kafka on booking lifecycle changes.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	VenueID       int64     `json:"venue_id,omitempty"`
	PaymentID     string    `json:"payment_id,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	TotalAmount   int64     `json:"total_amount,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
