package services

import (
	"context"

	"go.uber.org/zap"
	"venue-booking-service/apperrors"
	"venue-booking-service/models"
	"venue-booking-service/repository"
)

// VenueService serves the read-only venue catalog.
type VenueService interface {
	ListVenues(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error)
}

type venueServiceImpl struct {
	venues repository.VenueRepository
	logger *zap.Logger
}

func NewVenueService(venues repository.VenueRepository, logger *zap.Logger) VenueService {
	return &venueServiceImpl{venues: venues, logger: logger}
}

func (s *venueServiceImpl) ListVenues(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	venues, err := s.venues.List(ctx, filter.Normalize())
	if err != nil {
		s.logger.Error("Failed to list venues", zap.Error(err))
		return nil, apperrors.Internal("Failed to list venues", err)
	}
	return venues, nil
}
