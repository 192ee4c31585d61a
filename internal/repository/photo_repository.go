package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"picklesaathi/internal/model"
)

// PhotoRepository defines user photo persistence operations.
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.UserPhoto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserPhoto, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPhoto, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *model.UserPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserPhoto, error) {
	var photo model.UserPhoto
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UserPhoto{}, "id = ?", id).Error
}

// ListByUser returns a user's photos, most recent first.
func (r *photoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPhoto, error) {
	var photos []model.UserPhoto
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
