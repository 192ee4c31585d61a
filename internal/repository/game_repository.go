package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"picklesaathi/internal/model"
)

// GameFilter narrows the upcoming games listing.
type GameFilter struct {
	VenueID    string
	SkillLevel model.SkillLevel
}

// GameRepository defines game persistence operations.
type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	Update(ctx context.Context, game *model.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
	ListUpcoming(ctx context.Context, after time.Time, filter GameFilter) ([]model.Game, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).
		Preload("Venue").Preload("Host").
		Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// ListUpcoming returns active games starting after the given time,
// soonest first.
func (r *gameRepository) ListUpcoming(ctx context.Context, after time.Time, filter GameFilter) ([]model.Game, error) {
	var games []model.Game
	q := r.db.WithContext(ctx).
		Preload("Venue").Preload("Host").
		Where("status = ?", model.GameStatusActive).
		Where("starts_at > ?", after).
		Order("starts_at ASC")
	if filter.VenueID != "" {
		q = q.Where("venue_id = ?", filter.VenueID)
	}
	if filter.SkillLevel != "" {
		q = q.Where("skill_level = ?", filter.SkillLevel)
	}
	if err := q.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}
