package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
)

const DefaultYooKassaURL = "https://api.yookassa.ru/v3"

// YooKassaProvider implements PaymentGateway using the YooKassa API.
type YooKassaProvider struct {
	shopID     string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewYooKassaProvider(shopID, secretKey, baseURL string, timeout time.Duration) *YooKassaProvider {
	if baseURL == "" {
		baseURL = DefaultYooKassaURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &YooKassaProvider{
		shopID:    shopID,
		secretKey: secretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ---- YooKassa API request/response structs ----

type yooAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type yooConfirmationRequest struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url"`
}

type yooPaymentRequest struct {
	Amount       yooAmount              `json:"amount"`
	Confirmation yooConfirmationRequest `json:"confirmation"`
	Capture      bool                   `json:"capture"`
	Description  string                 `json:"description"`
	Metadata     map[string]string      `json:"metadata"`
}

type yooPaymentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// ---- PaymentGateway implementation ----

func (p *YooKassaProvider) Configured() bool {
	return p.shopID != "" && p.secretKey != ""
}

// CreatePayment posts a redirect-confirmation payment with immediate capture.
// The booking id travels in metadata and comes back in webhooks.
func (p *YooKassaProvider) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if req.BookingID <= 0 || req.Amount <= 0 {
		return nil, apperrors.Validation("Missing required fields: bookingId, amount")
	}
	if !p.Configured() {
		return nil, apperrors.Configuration("Payment gateway credentials not configured")
	}

	key := req.IdempotenceKey
	if key == "" {
		key = uuid.NewString()
	}
	currency := req.Currency
	if currency == "" {
		currency = models.Currency
	}

	body := yooPaymentRequest{
		Amount: yooAmount{
			Value:    req.Amount.String(),
			Currency: currency,
		},
		Confirmation: yooConfirmationRequest{
			Type:      "redirect",
			ReturnURL: req.ReturnURL,
		},
		Capture:     true,
		Description: req.Description,
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(req.BookingID, 10),
		},
	}

	var resp yooPaymentResponse
	if err := p.doRequest(ctx, http.MethodPost, "/payments", key, body, &resp); err != nil {
		return nil, err
	}

	return &models.PaymentResult{
		PaymentID:       resp.ID,
		ConfirmationURL: resp.Confirmation.ConfirmationURL,
		Status:          resp.Status,
	}, nil
}

// doRequest returns *apperrors.Error of kind gateway for any upstream or
// transport failure.
func (p *YooKassaProvider) doRequest(ctx context.Context, method, path, idempotenceKey string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal("marshal request", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Internal("create request", err)
	}
	req.SetBasicAuth(p.shopID, p.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", idempotenceKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		gwErr := apperrors.Gateway(http.StatusBadGateway, err.Error())
		gwErr.Err = err
		return gwErr
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Gateway(http.StatusBadGateway, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Gateway(resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return apperrors.Gateway(http.StatusBadGateway, fmt.Sprintf("decode response: %v", err))
		}
	}
	return nil
}
