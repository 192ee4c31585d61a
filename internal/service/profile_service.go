package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"picklesaathi/internal/cache"
	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// Profile is a player's public page: the user row plus their photo strip
// and the most recent reviews they received.
type Profile struct {
	User    model.User        `json:"user"`
	Photos  []model.UserPhoto `json:"photos"`
	Ratings []model.Rating    `json:"ratings"`
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name         *string
	Bio          *string
	Phone        *string
	Location     *string
	PlayingStyle *string
	SkillLevel   *model.SkillLevel
}

// ProfileService serves public profile pages and authenticated edits.
type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*Profile, error)
	UpdateProfile(ctx context.Context, caller *model.User, upd ProfileUpdate) (*model.User, error)
	AddPhoto(ctx context.Context, caller *model.User, imageURL string) (*model.UserPhoto, error)
	DeletePhoto(ctx context.Context, caller *model.User, photoID uuid.UUID) error
}

type profileService struct {
	users   repository.UserRepository
	photos  repository.PhotoRepository
	ratings repository.RatingRepository
	cache   *cache.Client
}

// NewProfileService creates a new profile service.
func NewProfileService(
	users repository.UserRepository,
	photos repository.PhotoRepository,
	ratings repository.RatingRepository,
	cache *cache.Client,
) ProfileService {
	return &profileService{
		users:   users,
		photos:  photos,
		ratings: ratings,
		cache:   cache,
	}
}

func profileCacheKey(username string) string {
	return fmt.Sprintf("profile:%s", username)
}

// GetProfile retrieves a public profile with caching.
func (s *profileService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var cached Profile
	if s.cache.GetJSON(ctx, profileCacheKey(username), &cached) {
		return &cached, nil
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	photos, err := s.photos.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	ratings, err := s.ratings.ListByUser(ctx, user.ID, recentRatingsLimit)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	profile := &Profile{User: *user, Photos: photos, Ratings: ratings}
	s.cache.SetJSON(ctx, profileCacheKey(username), profile, profileCacheTTL)
	return profile, nil
}

// UpdateProfile applies an authenticated edit to the caller's own row.
func (s *profileService) UpdateProfile(ctx context.Context, caller *model.User, upd ProfileUpdate) (*model.User, error) {
	if caller == nil {
		return nil, errors.ErrUnauthenticated
	}

	if upd.Name != nil {
		caller.Name = *upd.Name
	}
	if upd.Bio != nil {
		caller.Bio = *upd.Bio
	}
	if upd.Phone != nil {
		caller.Phone = *upd.Phone
	}
	if upd.Location != nil {
		caller.Location = *upd.Location
	}
	if upd.PlayingStyle != nil {
		caller.PlayingStyle = *upd.PlayingStyle
	}
	if upd.SkillLevel != nil {
		caller.SkillLevel = *upd.SkillLevel
	}

	if err := s.users.Update(ctx, caller); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(caller.Username))
	return caller, nil
}

// AddPhoto attaches an uploaded image URL to the caller's profile.
func (s *profileService) AddPhoto(ctx context.Context, caller *model.User, imageURL string) (*model.UserPhoto, error) {
	if caller == nil {
		return nil, errors.ErrUnauthenticated
	}

	photo := &model.UserPhoto{
		UserID:   caller.ID,
		ImageURL: imageURL,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(caller.Username))
	return photo, nil
}

// DeletePhoto removes one of the caller's own photos.
func (s *profileService) DeletePhoto(ctx context.Context, caller *model.User, photoID uuid.UUID) error {
	if caller == nil {
		return errors.ErrUnauthenticated
	}

	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPhotoNotFound
		}
		return fmt.Errorf("find photo: %w", err)
	}
	if photo.UserID != caller.ID {
		return errors.ErrForbidden
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(caller.Username))
	return nil
}
