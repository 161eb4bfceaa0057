package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency is the only currency the gateway is asked to charge in.
const Currency = "RUB"

// Amount is a monetary value in minor units (kopecks). It decodes from a
// JSON number or string such as 515, 515.5 or "515.50" without going through
// float64, rounding half up beyond two decimals.
type Amount int64

// maxAmountUnits keeps units*100 plus a rounded-up cent part within int64.
const maxAmountUnits = (math.MaxInt64 - 100) / 100

func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if units > maxAmountUnits {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}

	frac += "000"
	cents, _ := strconv.ParseInt(frac[:2], 10, 64)
	if frac[2] >= '5' {
		cents++
	}

	v := units*100 + cents
	if neg {
		v = -v
	}
	return Amount(v), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount with exactly two decimals, as the gateway expects.
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// BookingRef is a booking id that accepts a JSON number or numeric string.
type BookingRef int64

func (r *BookingRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", string(data))
	}
	*r = BookingRef(id)
	return nil
}

// CreatePaymentRequest is the payload for POST /payments.
type CreatePaymentRequest struct {
	BookingID   BookingRef `json:"bookingId"`
	Amount      Amount     `json:"amount"`
	Description string     `json:"description,omitempty"`
	ReturnURL   string     `json:"returnUrl,omitempty"`
}

// PaymentRequest is what the gateway client sends. IdempotenceKey is fresh
// for every call.
type PaymentRequest struct {
	BookingID      int64
	Amount         Amount
	Currency       string
	Description    string
	ReturnURL      string
	IdempotenceKey string
}

// PaymentResult is returned to the client after a payment is created.
type PaymentResult struct {
	PaymentID       string `json:"paymentId"`
	ConfirmationURL string `json:"confirmationUrl"`
	Status          string `json:"status"`
}
