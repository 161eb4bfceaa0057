package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"venue-booking-service/models"
	aws_pkg "venue-booking-service/pkg/aws"
)

// CachedVenueRepository puts a redis cache-aside in front of FindByID.
// Listings are not cached. Any redis failure falls back to the database.
type CachedVenueRepository struct {
	next    VenueRepository
	client  *redis.Client
	ttl     time.Duration
	metrics aws_pkg.CountRecorder
	logger  *zap.Logger
}

// NewCachedVenueRepository returns next unchanged when client is nil.
func NewCachedVenueRepository(next VenueRepository, client *redis.Client, ttl time.Duration, metrics aws_pkg.CountRecorder, logger *zap.Logger) VenueRepository {
	if client == nil {
		return next
	}
	return &CachedVenueRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func venueKey(id int64) string {
	return fmt.Sprintf("venue:detail:%d", id)
}

func (r *CachedVenueRepository) FindByID(ctx context.Context, id int64) (*models.Venue, error) {
	data, err := r.client.Get(ctx, venueKey(id)).Bytes()
	switch {
	case err == nil:
		var v models.Venue
		if jsonErr := json.Unmarshal(data, &v); jsonErr == nil {
			r.record(ctx, aws_pkg.MetricCacheHits)
			return &v, nil
		}
		r.logger.Warn("Discarding corrupt venue cache entry", zap.Int64("venue_id", id))
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("Venue cache read failed", zap.Int64("venue_id", id), zap.Error(err))
	}
	r.record(ctx, aws_pkg.MetricCacheMisses)

	v, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(v); err == nil {
		if err := r.client.Set(ctx, venueKey(id), b, r.ttl).Err(); err != nil {
			r.logger.Warn("Venue cache write failed", zap.Int64("venue_id", id), zap.Error(err))
		}
	}
	return v, nil
}

func (r *CachedVenueRepository) List(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	return r.next.List(ctx, filter)
}

func (r *CachedVenueRepository) record(ctx context.Context, metric string) {
	if r.metrics == nil {
		return
	}
	_ = r.metrics.RecordCount(ctx, metric, map[string]string{"Cache": "venue"})
}
