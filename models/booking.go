package models

import "time"

// Legacy column values. BookingState is the authoritative view; these are
// only what is stored.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
)

// EventDateLayout is the wire and storage format of Booking.EventDate.
const EventDateLayout = "2006-01-02"

// Booking is the GORM model persisted in Postgres.
type Booking struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	VenueID          int64     `gorm:"not null;index"`
	CustomerName     string    `gorm:"type:varchar(255);not null"`
	CustomerEmail    string    `gorm:"type:varchar(255);not null"`
	CustomerPhone    string    `gorm:"type:varchar(64);not null"`
	EventDate        time.Time `gorm:"type:date;not null"`
	GuestsCount      int       `gorm:"not null"`
	BasePrice        int64     `gorm:"not null"`
	CommissionAmount int64     `gorm:"not null"`
	TotalAmount      int64     `gorm:"not null"`
	PaymentStatus    string    `gorm:"type:varchar(20);not null;default:pending;index"`
	BookingStatus    string    `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

// State decodes the two status columns.
func (b *Booking) State() (BookingState, error) {
	return StateFromColumns(b.PaymentStatus, b.BookingStatus)
}

// SetState writes both status columns from s.
func (b *Booking) SetState(s BookingState) {
	b.PaymentStatus, b.BookingStatus = s.Columns()
}

// BookingDetails is a booking joined with its venue's name and city.
type BookingDetails struct {
	Booking   `gorm:"embedded"`
	VenueName string
	VenueCity string
}

// CreateBookingRequest is the payload for POST /bookings. Required-ness is
// checked by the service so every missing field yields the same error.
type CreateBookingRequest struct {
	VenueID       int64  `json:"venueId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	EventDate     string `json:"eventDate"`
	GuestsCount   int    `json:"guestsCount"`
}

type BookingResponse struct {
	ID               int64     `json:"id"`
	VenueID          int64     `json:"venueId"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	EventDate        string    `json:"eventDate"`
	GuestsCount      int       `json:"guestsCount"`
	BasePrice        int64     `json:"basePrice"`
	CommissionAmount int64     `json:"commissionAmount"`
	TotalAmount      int64     `json:"totalAmount"`
	PaymentStatus    string    `json:"paymentStatus"`
	BookingStatus    string    `json:"bookingStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

type BookingDetailResponse struct {
	ID               int64  `json:"id"`
	VenueID          int64  `json:"venueId"`
	VenueName        string `json:"venueName"`
	VenueCity        string `json:"venueCity"`
	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail"`
	EventDate        string `json:"eventDate"`
	GuestsCount      int    `json:"guestsCount"`
	BasePrice        int64  `json:"basePrice"`
	CommissionAmount int64  `json:"commissionAmount"`
	TotalAmount      int64  `json:"totalAmount"`
	PaymentStatus    string `json:"paymentStatus"`
	BookingStatus    string `json:"bookingStatus"`
}

// BookingSummary is the list projection.
type BookingSummary struct {
	ID            int64  `json:"id"`
	VenueID       int64  `json:"venueId"`
	VenueName     string `json:"venueName"`
	VenueCity     string `json:"venueCity"`
	CustomerName  string `json:"customerName"`
	EventDate     string `json:"eventDate"`
	GuestsCount   int    `json:"guestsCount"`
	TotalAmount   int64  `json:"totalAmount"`
	PaymentStatus string `json:"paymentStatus"`
	BookingStatus string `json:"bookingStatus"`
}

func NewBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		VenueID:          b.VenueID,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		EventDate:        b.EventDate.Format(EventDateLayout),
		GuestsCount:      b.GuestsCount,
		BasePrice:        b.BasePrice,
		CommissionAmount: b.CommissionAmount,
		TotalAmount:      b.TotalAmount,
		PaymentStatus:    b.PaymentStatus,
		BookingStatus:    b.BookingStatus,
		CreatedAt:        b.CreatedAt,
	}
}

func NewBookingDetailResponse(d *BookingDetails) BookingDetailResponse {
	return BookingDetailResponse{
		ID:               d.ID,
		VenueID:          d.VenueID,
		VenueName:        d.VenueName,
		VenueCity:        d.VenueCity,
		CustomerName:     d.CustomerName,
		CustomerEmail:    d.CustomerEmail,
		EventDate:        d.EventDate.Format(EventDateLayout),
		GuestsCount:      d.GuestsCount,
		BasePrice:        d.BasePrice,
		CommissionAmount: d.CommissionAmount,
		TotalAmount:      d.TotalAmount,
		PaymentStatus:    d.PaymentStatus,
		BookingStatus:    d.BookingStatus,
	}
}

func NewBookingSummary(d *BookingDetails) BookingSummary {
	return BookingSummary{
		ID:            d.ID,
		VenueID:       d.VenueID,
		VenueName:     d.VenueName,
		VenueCity:     d.VenueCity,
		CustomerName:  d.CustomerName,
		EventDate:     d.EventDate.Format(EventDateLayout),
		GuestsCount:   d.GuestsCount,
		TotalAmount:   d.TotalAmount,
		PaymentStatus: d.PaymentStatus,
		BookingStatus: d.BookingStatus,
	}
}
