package repository

import (
	"context"

	"gorm.io/gorm"

	"picklesaathi/internal/model"
)

// VenueRepository defines venue catalog persistence operations.
type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	Update(ctx context.Context, venue *model.Venue) error
	FindByID(ctx context.Context, id string) (*model.Venue, error)
	List(ctx context.Context, location string) ([]model.Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository.
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *venueRepository) Update(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *venueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	var venue model.Venue
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&venue).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// List returns the catalog ordered by name, optionally filtered by location.
func (r *venueRepository) List(ctx context.Context, location string) ([]model.Venue, error) {
	var venues []model.Venue
	q := r.db.WithContext(ctx).Order("name ASC")
	if location != "" {
		q = q.Where("location = ?", location)
	}
	if err := q.Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}
