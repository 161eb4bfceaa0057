package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
	"venue-booking-service/services"
)

type mockGateway struct {
	requests []models.PaymentRequest
	result   *models.PaymentResult
	err      error
}

func (m *mockGateway) CreatePayment(_ context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGateway) Configured() bool { return true }

var testDefaults = services.PaymentDefaults{
	Description: "Бронирование банкетного зала",
	ReturnURL:   "https://banketzaly.rf",
}

func TestCreatePayment_Success(t *testing.T) {
	gw := &mockGateway{result: &models.PaymentResult{PaymentID: "pay-1", ConfirmationURL: "https://pay/1", Status: "pending"}}
	metrics := newMockMetrics()
	svc := services.NewPaymentService(gw, testDefaults, metrics, zap.NewNop())

	res, err := svc.CreatePayment(context.Background(), &models.CreatePaymentRequest{
		BookingID: 7,
		Amount:    models.Amount(5150000),
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", res.PaymentID)

	require.Len(t, gw.requests, 1)
	sent := gw.requests[0]
	assert.Equal(t, int64(7), sent.BookingID)
	assert.Equal(t, "51500.00", sent.Amount.String())
	assert.Equal(t, "RUB", sent.Currency)
	assert.Equal(t, testDefaults.Description, sent.Description)
	assert.Equal(t, testDefaults.ReturnURL, sent.ReturnURL)
	assert.Len(t, sent.IdempotenceKey, 36)
	assert.Equal(t, 1, metrics.count(aws_pkg.MetricPaymentsInitiated))
}

func TestCreatePayment_KeepsCallerDescriptionAndReturnURL(t *testing.T) {
	gw := &mockGateway{result: &models.PaymentResult{}}
	svc := services.NewPaymentService(gw, testDefaults, nil, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), &models.CreatePaymentRequest{
		BookingID:   7,
		Amount:      100,
		Description: "Свадьба 1 июня",
		ReturnURL:   "https://shop/return",
	})
	require.NoError(t, err)
	assert.Equal(t, "Свадьба 1 июня", gw.requests[0].Description)
	assert.Equal(t, "https://shop/return", gw.requests[0].ReturnURL)
}

func TestCreatePayment_FreshIdempotenceKeyPerCall(t *testing.T) {
	gw := &mockGateway{result: &models.PaymentResult{}}
	svc := services.NewPaymentService(gw, testDefaults, nil, zap.NewNop())
	req := &models.CreatePaymentRequest{BookingID: 7, Amount: 100}

	_, err := svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CreatePayment(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, gw.requests, 2)
	assert.NotEqual(t, gw.requests[0].IdempotenceKey, gw.requests[1].IdempotenceKey)
}

func TestCreatePayment_MissingFields(t *testing.T) {
	gw := &mockGateway{}
	svc := services.NewPaymentService(gw, testDefaults, nil, zap.NewNop())

	for _, req := range []*models.CreatePaymentRequest{
		nil,
		{Amount: 100},
		{BookingID: 7},
		{BookingID: 7, Amount: -100},
	} {
		_, err := svc.CreatePayment(context.Background(), req)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	}
	assert.Empty(t, gw.requests)
}

func TestCreatePayment_GatewayErrorPassesThrough(t *testing.T) {
	gw := &mockGateway{err: apperrors.Gateway(http.StatusBadRequest, `{"code":"invalid_request"}`)}
	metrics := newMockMetrics()
	svc := services.NewPaymentService(gw, testDefaults, metrics, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), &models.CreatePaymentRequest{BookingID: 7, Amount: 100})
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, `{"code":"invalid_request"}`, appErr.Details)
	assert.Equal(t, 1, metrics.count(aws_pkg.MetricPaymentGatewayError))
}

func TestCreatePayment_ConfigurationError(t *testing.T) {
	gw := &mockGateway{err: apperrors.Configuration("Payment gateway credentials not configured")}
	svc := services.NewPaymentService(gw, testDefaults, nil, zap.NewNop())

	_, err := svc.CreatePayment(context.Background(), &models.CreatePaymentRequest{BookingID: 7, Amount: 100})
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}
