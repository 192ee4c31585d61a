package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"picklesaathi/internal/model"
)

// BookingScope selects which slice of a user's bookings to list.
type BookingScope string

const (
	// BookingScopeCurrent covers active bookings on games yet to start.
	BookingScopeCurrent BookingScope = "current"
	// BookingScopePrevious covers bookings on games already played.
	BookingScopePrevious BookingScope = "previous"
)

// BookingRepository defines booking persistence operations. It also locks
// and reads game rows, because the capacity decision on join and the
// waitlist promotion on cancel must happen in one transaction.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	FindByGameAndUser(ctx context.Context, gameID, userID uuid.UUID) (*model.Booking, error)
	FindGameForUpdate(ctx context.Context, gameID uuid.UUID) (*model.Game, error)
	CountConfirmed(ctx context.Context, gameID uuid.UUID) (int64, error)
	FirstWaiting(ctx context.Context, gameID uuid.UUID) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, scope BookingScope, now time.Time) ([]model.Booking, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByGameAndUser(ctx context.Context, gameID, userID uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindGameForUpdate fetches a game row with a row-level lock so capacity
// decisions for the same game serialize.
func (r *bookingRepository) FindGameForUpdate(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", gameID).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// CountConfirmed counts confirmed bookings for a game.
func (r *bookingRepository) CountConfirmed(ctx context.Context, gameID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("game_id = ? AND status = ?", gameID, model.BookingStatusConfirmed).
		Count(&count).Error
	return count, err
}

// FirstWaiting returns the earliest waitlisted booking for a game, or
// gorm.ErrRecordNotFound when the waitlist is empty.
func (r *bookingRepository) FirstWaiting(ctx context.Context, gameID uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Where("game_id = ? AND status = ?", gameID, model.BookingStatusWaiting).
		Order("created_at ASC").
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns a user's bookings with their games, split on the
// game's start time relative to now.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, scope BookingScope, now time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	q := r.db.WithContext(ctx).
		Preload("Game").Preload("Game.Venue").
		Joins("JOIN games ON games.id = bookings.game_id").
		Where("bookings.user_id = ?", userID)
	switch scope {
	case BookingScopePrevious:
		q = q.Where("games.starts_at <= ?", now).Order("games.starts_at DESC")
	default:
		q = q.Where("games.starts_at > ?", now).
			Where("bookings.status <> ?", model.BookingStatusCancelled).
			Order("games.starts_at ASC")
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// WithTransaction executes a function within a database transaction.
func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
