package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

// VenueService serves the venue catalog.
type VenueService interface {
	ListVenues(ctx context.Context, location string) ([]model.Venue, error)
	SeedVenues(ctx context.Context, venues []model.Venue) (created int, updated int, err error)
}

type venueService struct {
	repo repository.VenueRepository
}

// NewVenueService creates a new venue service.
func NewVenueService(repo repository.VenueRepository) VenueService {
	return &venueService{repo: repo}
}

// ListVenues returns the catalog, optionally filtered by location.
func (s *venueService) ListVenues(ctx context.Context, location string) ([]model.Venue, error) {
	return s.repo.List(ctx, location)
}

// SeedVenues creates or updates catalog rows from seed data.
func (s *venueService) SeedVenues(ctx context.Context, venues []model.Venue) (created int, updated int, err error) {
	for _, venue := range venues {
		existing, err := s.repo.FindByID(ctx, venue.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, fmt.Errorf("check venue %s: %w", venue.ID, err)
		}

		if existing != nil {
			existing.Name = venue.Name
			existing.Location = venue.Location
			existing.Courts = venue.Courts
			existing.Surface = venue.Surface
			existing.Amenities = venue.Amenities
			if err := s.repo.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("update venue %s: %w", venue.ID, err)
			}
			updated++
		} else {
			venue := venue
			if err := s.repo.Create(ctx, &venue); err != nil {
				return created, updated, fmt.Errorf("create venue %s: %w", venue.ID, err)
			}
			created++
		}
	}
	return created, updated, nil
}
