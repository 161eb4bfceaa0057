package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"venue-booking-service/services"
)

func TestComputePricing(t *testing.T) {
	tests := []struct {
		base           int64
		wantCommission int64
		wantTotal      int64
	}{
		{10000, 300, 10300},
		{50000, 1500, 51500},
		{0, 0, 0},
		{33, 0, 33},
		{34, 1, 35},
		{99999, 2999, 102998},
	}

	for _, tt := range tests {
		p := services.ComputePricing(tt.base)
		assert.Equal(t, tt.wantCommission, p.Commission, "base %d", tt.base)
		assert.Equal(t, tt.wantTotal, p.Total, "base %d", tt.base)
	}
}

func TestComputePricing_TotalIsBasePlusCommission(t *testing.T) {
	for base := int64(0); base < 5000; base += 7 {
		p := services.ComputePricing(base)
		assert.Equal(t, base+p.Commission, p.Total)
		assert.Equal(t, base*3/100, p.Commission)
	}
}

func TestComputePricingAtRate(t *testing.T) {
	p := services.ComputePricingAtRate(10000, 500)
	assert.Equal(t, int64(500), p.Commission)
	assert.Equal(t, int64(10500), p.Total)
}

func TestComputePricing_LargeBasePriceDoesNotOverflow(t *testing.T) {
	tests := []struct {
		base           int64
		wantCommission int64
	}{
		{100_000_000_000_000_000, 3_000_000_000_000_000},
		{100_000_000_000_000_033, 3_000_000_000_000_000},
		{100_000_000_000_000_034, 3_000_000_000_000_001},
		{8_000_000_000_000_000_000, 240_000_000_000_000_000},
	}

	for _, tt := range tests {
		p := services.ComputePricing(tt.base)
		assert.Equal(t, tt.wantCommission, p.Commission, "base %d", tt.base)
		assert.Equal(t, tt.base+tt.wantCommission, p.Total, "base %d", tt.base)
		assert.Positive(t, p.Total, "base %d", tt.base)
	}
}
