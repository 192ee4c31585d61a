package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"picklesaathi/internal/cache"
	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

const recentRatingsLimit = 20

// RatingService records one reviewer's rating of a player and keeps the
// player's cached aggregate consistent with the full rating set.
type RatingService interface {
	// Rate upserts the reviewer's rating for the player identified by
	// external id and returns the recomputed aggregate. The reviewer is
	// always the authenticated caller.
	Rate(ctx context.Context, reviewer *model.User, ratedExternalID string, score decimal.Decimal, review string) (*model.RatingSummary, error)
	// ListForUser returns ratings received by a player, most recent first.
	ListForUser(ctx context.Context, username string) ([]model.Rating, error)
}

type ratingService struct {
	users   repository.UserRepository
	ratings repository.RatingRepository
	cache   *cache.Client
}

// NewRatingService creates a new rating service.
func NewRatingService(users repository.UserRepository, ratings repository.RatingRepository, cache *cache.Client) RatingService {
	return &ratingService{
		users:   users,
		ratings: ratings,
		cache:   cache,
	}
}

// Rate runs the upsert, the from-scratch mean recompute, and the
// write-back onto the user row inside one transaction with the rated
// user's row locked, so two concurrent submissions cannot lose an update.
func (s *ratingService) Rate(ctx context.Context, reviewer *model.User, ratedExternalID string, score decimal.Decimal, review string) (*model.RatingSummary, error) {
	if reviewer == nil {
		return nil, errors.ErrUnauthenticated
	}

	rated, err := s.users.FindByExternalID(ctx, ratedExternalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find rated user: %w", err)
	}
	if rated.ID == reviewer.ID {
		return nil, errors.ErrSelfRating
	}

	var summary *model.RatingSummary
	err = s.ratings.WithTransaction(ctx, func(ctx context.Context, tx repository.RatingRepository) error {
		// Serialize concurrent submissions for the same rated user.
		if _, err := tx.FindUserForUpdate(ctx, rated.ID); err != nil {
			return fmt.Errorf("lock rated user: %w", err)
		}

		existing, err := tx.FindByUserAndReviewer(ctx, rated.ID, reviewer.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find rating: %w", err)
		}

		if existing != nil {
			existing.Score = score
			existing.Review = review
			if err := tx.Update(ctx, existing); err != nil {
				return fmt.Errorf("update rating: %w", err)
			}
		} else {
			rating := &model.Rating{
				UserID:     rated.ID,
				ReviewerID: reviewer.ID,
				Score:      score,
				Review:     review,
			}
			if err := tx.Create(ctx, rating); err != nil {
				return fmt.Errorf("create rating: %w", err)
			}
		}

		average, count, err := tx.AggregateByUser(ctx, rated.ID)
		if err != nil {
			return fmt.Errorf("recompute aggregate: %w", err)
		}
		if err := tx.UpdateUserAggregate(ctx, rated.ID, average, int(count)); err != nil {
			return fmt.Errorf("write aggregate: %w", err)
		}

		summary = &model.RatingSummary{Average: average, Count: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, profileCacheKey(rated.Username))
	return summary, nil
}

// ListForUser returns the ratings received by the player with the given
// username, most recent first.
func (s *ratingService) ListForUser(ctx context.Context, username string) ([]model.Rating, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.ratings.ListByUser(ctx, user.ID, 0)
}
