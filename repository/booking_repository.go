package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"venue-booking-service/models"
)

// DefaultRecentLimit is how many bookings ListRecent returns by default.
const DefaultRecentLimit = 50

// BookingRepository defines data-access operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id int64) (*models.BookingDetails, error)
	ListRecent(ctx context.Context, limit int) ([]models.BookingDetails, error)
	// UpdatePaymentOutcome moves the booking to outcome's target state if it
	// is currently in one of outcome's source states. It returns the number
	// of rows changed (0 or 1).
	UpdatePaymentOutcome(ctx context.Context, id int64, outcome models.PaymentOutcome) (int64, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: db}
}

const bookingDetailsSelect = "bookings.*, venues.name AS venue_name, venues.city AS venue_city"

func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*models.BookingDetails, error) {
	var d models.BookingDetails
	if err := r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingDetailsSelect).
		Joins("JOIN venues ON venues.id = bookings.venue_id").
		Where("bookings.id = ?", id).
		Take(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormBookingRepository) ListRecent(ctx context.Context, limit int) ([]models.BookingDetails, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var out []models.BookingDetails
	if err := r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingDetailsSelect).
		Joins("JOIN venues ON venues.id = bookings.venue_id").
		Order("bookings.created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormBookingRepository) UpdatePaymentOutcome(ctx context.Context, id int64, outcome models.PaymentOutcome) (int64, error) {
	sources := outcome.Sources()
	if len(sources) == 0 {
		return 0, nil
	}
	pairs := make([][]interface{}, 0, len(sources))
	for _, s := range sources {
		p, b := s.Columns()
		pairs = append(pairs, []interface{}{p, b})
	}
	payment, booking := outcome.Target().Columns()

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND (payment_status, booking_status) IN ?", id, pairs).
		Updates(map[string]interface{}{
			"payment_status": payment,
			"booking_status": booking,
			"updated_at":     time.Now(),
		})
	return res.RowsAffected, res.Error
}
