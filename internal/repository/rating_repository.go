package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"picklesaathi/internal/model"
)

// RatingRepository defines rating persistence operations. It also carries
// the rated user's aggregate columns, since both sides of the
// upsert-then-recompute sequence must run in one transaction.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	Update(ctx context.Context, rating *model.Rating) error
	FindByUserAndReviewer(ctx context.Context, userID, reviewerID uuid.UUID) (*model.Rating, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Rating, error)
	AggregateByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, int64, error)
	FindUserForUpdate(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUserAggregate(ctx context.Context, userID uuid.UUID, rating decimal.Decimal, totalReviews int) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create creates a new rating.
func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// Update updates an existing rating.
func (r *ratingRepository) Update(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// FindByUserAndReviewer finds the single rating for a (rated, reviewer) pair.
func (r *ratingRepository) FindByUserAndReviewer(ctx context.Context, userID, reviewerID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND reviewer_id = ?", userID, reviewerID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByUser returns ratings received by a user, most recent first.
func (r *ratingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Rating, error) {
	var ratings []model.Rating
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// AggregateByUser recomputes the mean score and count over all current
// rating rows for a user. Always from scratch, never a running sum.
func (r *ratingRepository) AggregateByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, int64, error) {
	var agg struct {
		Average decimal.Decimal
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return agg.Average, agg.Total, nil
}

// FindUserForUpdate fetches the rated user row with a row-level lock so
// concurrent submissions for the same user serialize.
func (r *ratingRepository) FindUserForUpdate(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserAggregate writes the recomputed mean and count onto the user row.
func (r *ratingRepository) UpdateUserAggregate(ctx context.Context, userID uuid.UUID, rating decimal.Decimal, totalReviews int) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		}).Error
}

// WithTransaction executes a function within a database transaction.
func (r *ratingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ratingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
