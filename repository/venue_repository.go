package repository

import (
	"context"

	"gorm.io/gorm"
	"venue-booking-service/models"
)

// VenueRepository reads the venue catalog.
type VenueRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Venue, error)
	List(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error)
}

type GormVenueRepository struct {
	db *gorm.DB
}

func NewGormVenueRepository(db *gorm.DB) VenueRepository {
	return &GormVenueRepository{db: db}
}

func (r *GormVenueRepository) FindByID(ctx context.Context, id int64) (*models.Venue, error) {
	var v models.Venue
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormVenueRepository) List(ctx context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Venue{})
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filter.MinCapacity)
	}

	var venues []models.Venue
	if err := query.
		Order("rating DESC NULLS LAST").
		Order("name ASC").
		Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}
