package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"venue-booking-service/models"
)

// ---- in-memory booking repository ----

type memBookingRepo struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]*models.Booking
	createErr error
	updateErr error
	creates   int
	updates   int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{nextID: 1, rows: map[int64]*models.Booking{}}
}

func (m *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBookingRepo) FindByID(_ context.Context, id int64) (*models.BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.BookingDetails{Booking: *b, VenueName: "Лофт", VenueCity: "Москва"}, nil
}

func (m *memBookingRepo) ListRecent(_ context.Context, limit int) ([]models.BookingDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BookingDetails
	for id := m.nextID - 1; id > 0 && len(out) < limit; id-- {
		if b, ok := m.rows[id]; ok {
			out = append(out, models.BookingDetails{Booking: *b})
		}
	}
	return out, nil
}

// UpdatePaymentOutcome mirrors the conditional UPDATE of the gorm repository.
func (m *memBookingRepo) UpdatePaymentOutcome(_ context.Context, id int64, outcome models.PaymentOutcome) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	b, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	from, err := b.State()
	if err != nil {
		return 0, nil
	}
	for _, src := range outcome.Sources() {
		if src == from {
			b.SetState(outcome.Target())
			b.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memBookingRepo) seed(id int64, state models.BookingState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &models.Booking{ID: id, VenueID: 1, BasePrice: 50000, CommissionAmount: 1500, TotalAmount: 51500}
	b.SetState(state)
	m.rows[id] = b
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

// corrupt writes a status pair no BookingState maps to.
func (m *memBookingRepo) corrupt(id int64, paymentStatus, bookingStatus string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[id].PaymentStatus = paymentStatus
	m.rows[id].BookingStatus = bookingStatus
}

func (m *memBookingRepo) updateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

func (m *memBookingRepo) state(id int64) models.BookingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, _ := m.rows[id].State()
	return s
}

// ---- venue repository ----

type mockVenueRepo struct {
	venues  map[int64]*models.Venue
	findErr error
	listErr error
	filter  models.VenueFilter
}

func (m *mockVenueRepo) FindByID(_ context.Context, id int64) (*models.Venue, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	v, ok := m.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (m *mockVenueRepo) List(_ context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	m.filter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Venue
	for _, v := range m.venues {
		out = append(out, *v)
	}
	return out, nil
}

// ---- notification repository ----

type mockNotificationRepo struct {
	mu      sync.Mutex
	stored  []models.PaymentNotification
	saveErr error
	findErr error
}

func (m *mockNotificationRepo) Create(_ context.Context, n *models.PaymentNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = append(m.stored, *n)
	return nil
}

func (m *mockNotificationRepo) FindByGatewayPaymentID(_ context.Context, id string) ([]models.PaymentNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.PaymentNotification
	for _, n := range m.stored {
		if n.GatewayPaymentID == id {
			out = append(out, n)
		}
	}
	return out, nil
}

// ---- event publisher ----

type mockPublisher struct {
	mu         sync.Mutex
	events     []models.BookingEvent
	publishErr error
}

func (m *mockPublisher) PublishBookingEvent(_ context.Context, e models.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// ---- metrics ----

type mockMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{counts: map[string]int{}}
}

func (m *mockMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

func (m *mockMetrics) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// ---- SNS ----

type mockTopic struct {
	message    []byte
	attributes map[string]string
	publishErr error
}

func (m *mockTopic) Publish(_ context.Context, body []byte, attributes map[string]string) (string, error) {
	m.message = body
	m.attributes = attributes
	if m.publishErr != nil {
		return "", m.publishErr
	}
	return "msg-1", nil
}

var errDB = errors.New("connection refused")
