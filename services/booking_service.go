package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
	"venue-booking-service/repository"
)

// BookingService defines the booking store operations.
type BookingService interface {
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.BookingDetails, error)
	ListRecentBookings(ctx context.Context, limit int) ([]models.BookingDetails, error)
}

type bookingServiceImpl struct {
	bookings  repository.BookingRepository
	venues    repository.VenueRepository
	publisher EventPublisher
	metrics   aws_pkg.CountRecorder
	logger    *zap.Logger
	now       func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	venues repository.VenueRepository,
	publisher EventPublisher,
	metrics aws_pkg.CountRecorder,
	logger *zap.Logger,
) BookingService {
	return &bookingServiceImpl{
		bookings:  bookings,
		venues:    venues,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

const missingBookingFields = "Missing required fields: venueId, customerName, customerEmail, customerPhone, eventDate, guestsCount"

// CreateBooking validates input, prices the booking from the venue's base
// price and stores it awaiting payment.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if req == nil {
		return nil, apperrors.Validation(missingBookingFields)
	}
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	phone := strings.TrimSpace(req.CustomerPhone)
	rawDate := strings.TrimSpace(req.EventDate)

	if req.VenueID <= 0 || name == "" || email == "" || phone == "" || rawDate == "" || req.GuestsCount <= 0 {
		return nil, apperrors.Validation(missingBookingFields)
	}

	eventDate, err := parseEventDate(rawDate)
	if err != nil {
		return nil, apperrors.Validation("Invalid eventDate, expected YYYY-MM-DD")
	}

	venue, err := s.venues.FindByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Venue not found")
		}
		s.logger.Error("Venue lookup failed", zap.Int64("venue_id", req.VenueID), zap.Error(err))
		return nil, apperrors.Internal("Failed to load venue", err)
	}

	pricing := ComputePricing(venue.Price)
	booking := &models.Booking{
		VenueID:          venue.ID,
		CustomerName:     name,
		CustomerEmail:    email,
		CustomerPhone:    phone,
		EventDate:        eventDate,
		GuestsCount:      req.GuestsCount,
		BasePrice:        pricing.BasePrice,
		CommissionAmount: pricing.Commission,
		TotalAmount:      pricing.Total,
	}
	booking.SetState(models.StatePendingPayment)

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to persist booking", zap.Int64("venue_id", venue.ID), zap.Error(err))
		return nil, apperrors.Internal("Failed to save booking", err)
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("venue_id", booking.VenueID),
		zap.Int64("total_amount", booking.TotalAmount),
	)

	recordCount(ctx, s.metrics, aws_pkg.MetricBookingsCreated, map[string]string{"Service": "booking"})
	publishEvent(ctx, s.publisher, s.logger, models.BookingEvent{
		Type:          models.EventBookingCreated,
		BookingID:     booking.ID,
		VenueID:       booking.VenueID,
		PaymentStatus: booking.PaymentStatus,
		BookingStatus: booking.BookingStatus,
		TotalAmount:   booking.TotalAmount,
		Timestamp:     s.now().UTC(),
	})

	return booking, nil
}

func (s *bookingServiceImpl) GetBooking(ctx context.Context, id int64) (*models.BookingDetails, error) {
	if id <= 0 {
		return nil, apperrors.Validation("Invalid booking id")
	}
	d, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found")
		}
		s.logger.Error("Booking lookup failed", zap.Int64("booking_id", id), zap.Error(err))
		return nil, apperrors.Internal("Failed to load booking", err)
	}
	if _, err := d.State(); err != nil {
		s.logger.Error("Booking has an inconsistent status",
			zap.Int64("booking_id", id),
			zap.String("payment_status", d.PaymentStatus),
			zap.String("booking_status", d.BookingStatus),
		)
		return nil, apperrors.Internal("Failed to load booking", err)
	}
	return d, nil
}

func (s *bookingServiceImpl) ListRecentBookings(ctx context.Context, limit int) ([]models.BookingDetails, error) {
	if limit <= 0 {
		limit = repository.DefaultRecentLimit
	}
	list, err := s.bookings.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list bookings", zap.Error(err))
		return nil, apperrors.Internal("Failed to list bookings", err)
	}
	return list, nil
}

// parseEventDate accepts a calendar date or a full RFC3339 timestamp, of
// which only the date part is kept.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(models.EventDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
