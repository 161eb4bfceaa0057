package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"venue-booking-service/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := apperrors.NotFound("Venue not found")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrValidation))

	wrapped := fmt.Errorf("create booking: %w", err)
	assert.True(t, errors.Is(wrapped, apperrors.ErrNotFound))
}

func TestGateway_KeepsUpstreamStatusAndBody(t *testing.T) {
	err := apperrors.Gateway(http.StatusUnauthorized, `{"type":"error","code":"invalid_credentials"}`)

	assert.Equal(t, http.StatusUnauthorized, err.Code)
	assert.Equal(t, `{"type":"error","code":"invalid_credentials"}`, err.Details)
	assert.JSONEq(t, `{"code":401,"error":"Payment creation failed","details":"{\"type\":\"error\",\"code\":\"invalid_credentials\"}"}`, err.JSON())
}

func TestFrom_UnknownErrorIsInternal(t *testing.T) {
	appErr := apperrors.From(errors.New("connection reset"))

	assert.Equal(t, apperrors.KindInternal, appErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Nil(t, apperrors.From(nil))
}

func TestFrom_UnwrapsAppError(t *testing.T) {
	orig := apperrors.Validation("Missing required fields")
	appErr := apperrors.From(fmt.Errorf("decode: %w", orig))

	assert.Same(t, orig, appErr)
}
