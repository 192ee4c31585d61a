package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

// CreateGameInput carries the host-a-game form fields.
type CreateGameInput struct {
	VenueID         string
	StartsAt        time.Time
	DurationMinutes int
	SkillLevel      model.SkillLevel
	MaxPlayers      int
	CostPerPlayer   decimal.Decimal
	Description     string
}

// GameService covers hosting games and managing spot bookings.
type GameService interface {
	CreateGame(ctx context.Context, host *model.User, in CreateGameInput) (*model.Game, error)
	ListUpcoming(ctx context.Context, filter repository.GameFilter) ([]model.Game, error)
	JoinGame(ctx context.Context, caller *model.User, gameID uuid.UUID) (*model.Booking, error)
	CancelBooking(ctx context.Context, caller *model.User, bookingID uuid.UUID) error
	ListBookings(ctx context.Context, caller *model.User, scope repository.BookingScope) ([]model.Booking, error)
}

type gameService struct {
	games    repository.GameRepository
	bookings repository.BookingRepository
	venues   repository.VenueRepository
	now      func() time.Time
}

// NewGameService creates a new game service.
func NewGameService(
	games repository.GameRepository,
	bookings repository.BookingRepository,
	venues repository.VenueRepository,
) GameService {
	return &gameService{
		games:    games,
		bookings: bookings,
		venues:   venues,
		now:      time.Now,
	}
}

// CreateGame hosts a new game at a venue. The host gets an automatic
// confirmed booking for their own game.
func (s *gameService) CreateGame(ctx context.Context, host *model.User, in CreateGameInput) (*model.Game, error) {
	if host == nil {
		return nil, errors.ErrUnauthenticated
	}
	if in.StartsAt.Before(s.now()) {
		return nil, errors.ErrGameStarted
	}

	if _, err := s.venues.FindByID(ctx, in.VenueID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVenueNotFound
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}

	game := &model.Game{
		VenueID:         in.VenueID,
		HostID:          host.ID,
		StartsAt:        in.StartsAt,
		DurationMinutes: in.DurationMinutes,
		SkillLevel:      in.SkillLevel,
		MaxPlayers:      in.MaxPlayers,
		CostPerPlayer:   in.CostPerPlayer,
		Description:     in.Description,
		Status:          model.GameStatusActive,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	hostBooking := &model.Booking{
		GameID: game.ID,
		UserID: host.ID,
		Status: model.BookingStatusConfirmed,
	}
	if err := s.bookings.Create(ctx, hostBooking); err != nil {
		return nil, fmt.Errorf("create host booking: %w", err)
	}

	return game, nil
}

// ListUpcoming returns active games that have not started yet.
func (s *gameService) ListUpcoming(ctx context.Context, filter repository.GameFilter) ([]model.Game, error) {
	return s.games.ListUpcoming(ctx, s.now(), filter)
}

// JoinGame books a spot. The game row is locked for the duration of the
// transaction so the confirmed-count capacity decision cannot race.
func (s *gameService) JoinGame(ctx context.Context, caller *model.User, gameID uuid.UUID) (*model.Booking, error) {
	if caller == nil {
		return nil, errors.ErrUnauthenticated
	}

	var booking *model.Booking
	err := s.bookings.WithTransaction(ctx, func(ctx context.Context, tx repository.BookingRepository) error {
		game, err := tx.FindGameForUpdate(ctx, gameID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrGameNotFound
			}
			return fmt.Errorf("lock game: %w", err)
		}
		if game.Status != model.GameStatusActive || game.StartsAt.Before(s.now()) {
			return errors.ErrGameStarted
		}

		existing, err := tx.FindByGameAndUser(ctx, gameID, caller.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find booking: %w", err)
		}
		if existing != nil && existing.Active() {
			return errors.ErrAlreadyBooked
		}

		confirmed, err := tx.CountConfirmed(ctx, gameID)
		if err != nil {
			return fmt.Errorf("count confirmed: %w", err)
		}
		status := model.BookingStatusConfirmed
		if confirmed >= int64(game.MaxPlayers) {
			status = model.BookingStatusWaiting
		}

		if existing != nil {
			// Rejoin after cancel reuses the row; the unique
			// (game, user) index forbids a second one.
			existing.Status = status
			if err := tx.Update(ctx, existing); err != nil {
				return fmt.Errorf("reactivate booking: %w", err)
			}
			booking = existing
			return nil
		}

		booking = &model.Booking{
			GameID: gameID,
			UserID: caller.ID,
			Status: status,
		}
		if err := tx.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels the caller's booking and promotes the earliest
// waitlisted player in the same transaction.
func (s *gameService) CancelBooking(ctx context.Context, caller *model.User, bookingID uuid.UUID) error {
	if caller == nil {
		return errors.ErrUnauthenticated
	}

	return s.bookings.WithTransaction(ctx, func(ctx context.Context, tx repository.BookingRepository) error {
		booking, err := tx.FindByID(ctx, bookingID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookingNotFound
			}
			return fmt.Errorf("find booking: %w", err)
		}
		if booking.UserID != caller.ID {
			return errors.ErrForbidden
		}

		if _, err := tx.FindGameForUpdate(ctx, booking.GameID); err != nil {
			return fmt.Errorf("lock game: %w", err)
		}

		wasConfirmed := booking.Status == model.BookingStatusConfirmed
		booking.Status = model.BookingStatusCancelled
		if err := tx.Update(ctx, booking); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		if !wasConfirmed {
			return nil
		}

		next, err := tx.FirstWaiting(ctx, booking.GameID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return fmt.Errorf("find waitlisted booking: %w", err)
		}
		next.Status = model.BookingStatusConfirmed
		if err := tx.Update(ctx, next); err != nil {
			return fmt.Errorf("promote waitlisted booking: %w", err)
		}
		return nil
	})
}

// ListBookings splits the caller's bookings into current and previous on
// the game's start time.
func (s *gameService) ListBookings(ctx context.Context, caller *model.User, scope repository.BookingScope) ([]model.Booking, error) {
	if caller == nil {
		return nil, errors.ErrUnauthenticated
	}
	return s.bookings.ListByUser(ctx, caller.ID, scope, s.now())
}
