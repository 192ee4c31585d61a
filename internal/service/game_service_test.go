package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

// memBookingRepo backs BookingRepository with maps so join/cancel
// sequencing runs against real state transitions.
type memBookingRepo struct {
	games    map[uuid.UUID]*model.Game
	bookings map[uuid.UUID]*model.Booking
	seq      int
}

func newMemBookingRepo(games ...*model.Game) *memBookingRepo {
	repo := &memBookingRepo{
		games:    make(map[uuid.UUID]*model.Game),
		bookings: make(map[uuid.UUID]*model.Booking),
	}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (r *memBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.seq++
	booking.CreatedAt = time.Unix(int64(r.seq), 0)
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *booking
	return &cp, nil
}

func (r *memBookingRepo) FindByGameAndUser(ctx context.Context, gameID, userID uuid.UUID) (*model.Booking, error) {
	for _, booking := range r.bookings {
		if booking.GameID == gameID && booking.UserID == userID {
			cp := *booking
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBookingRepo) FindGameForUpdate(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	game, ok := r.games[gameID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *game
	return &cp, nil
}

func (r *memBookingRepo) CountConfirmed(ctx context.Context, gameID uuid.UUID) (int64, error) {
	var count int64
	for _, booking := range r.bookings {
		if booking.GameID == gameID && booking.Status == model.BookingStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) FirstWaiting(ctx context.Context, gameID uuid.UUID) (*model.Booking, error) {
	var earliest *model.Booking
	for _, booking := range r.bookings {
		if booking.GameID != gameID || booking.Status != model.BookingStatusWaiting {
			continue
		}
		if earliest == nil || booking.CreatedAt.Before(earliest.CreatedAt) {
			earliest = booking
		}
	}
	if earliest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *earliest
	return &cp, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID, scope repository.BookingScope, now time.Time) ([]model.Booking, error) {
	var out []model.Booking
	for _, booking := range r.bookings {
		game, ok := r.games[booking.GameID]
		if !ok || booking.UserID != userID {
			continue
		}
		switch scope {
		case repository.BookingScopePrevious:
			if game.StartsAt.After(now) {
				continue
			}
		default:
			if !game.StartsAt.After(now) || booking.Status == model.BookingStatusCancelled {
				continue
			}
		}
		out = append(out, *booking)
	}
	return out, nil
}

func (r *memBookingRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.BookingRepository) error) error {
	return fn(ctx, r)
}

func (r *memBookingRepo) statusOf(t *testing.T, gameID, userID uuid.UUID) model.BookingStatus {
	t.Helper()
	booking, err := r.FindByGameAndUser(context.Background(), gameID, userID)
	if err != nil {
		t.Fatalf("booking for user %s not found", userID)
	}
	return booking.Status
}

type memGameRepo struct {
	games map[uuid.UUID]*model.Game
}

func (r *memGameRepo) Create(ctx context.Context, game *model.Game) error {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	cp := *game
	r.games[game.ID] = &cp
	return nil
}

func (r *memGameRepo) Update(ctx context.Context, game *model.Game) error {
	cp := *game
	r.games[game.ID] = &cp
	return nil
}

func (r *memGameRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *game
	return &cp, nil
}

func (r *memGameRepo) ListUpcoming(ctx context.Context, after time.Time, filter repository.GameFilter) ([]model.Game, error) {
	var out []model.Game
	for _, game := range r.games {
		if game.Status == model.GameStatusActive && game.StartsAt.After(after) {
			out = append(out, *game)
		}
	}
	return out, nil
}

type memVenueRepo struct {
	venues map[string]*model.Venue
}

func (r *memVenueRepo) Create(ctx context.Context, venue *model.Venue) error {
	r.venues[venue.ID] = venue
	return nil
}

func (r *memVenueRepo) Update(ctx context.Context, venue *model.Venue) error {
	r.venues[venue.ID] = venue
	return nil
}

func (r *memVenueRepo) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	venue, ok := r.venues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return venue, nil
}

func (r *memVenueRepo) List(ctx context.Context, location string) ([]model.Venue, error) {
	var out []model.Venue
	for _, venue := range r.venues {
		out = append(out, *venue)
	}
	return out, nil
}

var testNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func newTestGameService(bookings *memBookingRepo) (*gameService, *memGameRepo, *memVenueRepo) {
	games := &memGameRepo{games: bookings.games}
	venues := &memVenueRepo{venues: map[string]*model.Venue{
		"sunset-courts": {ID: "sunset-courts", Name: "Sunset Courts", Location: "Ahmedabad"},
	}}
	svc := NewGameService(games, bookings, venues).(*gameService)
	svc.now = func() time.Time { return testNow }
	return svc, games, venues
}

func gameFixture(maxPlayers int) *model.Game {
	return &model.Game{
		ID:         uuid.New(),
		VenueID:    "sunset-courts",
		HostID:     uuid.New(),
		StartsAt:   testNow.Add(2 * time.Hour),
		MaxPlayers: maxPlayers,
		Status:     model.GameStatusActive,
	}
}

func player(name string) *model.User {
	return &model.User{ID: uuid.New(), Email: name + "@example.com", Username: name}
}

func TestGameService_CreateGame(t *testing.T) {
	bookings := newMemBookingRepo()
	svc, games, _ := newTestGameService(bookings)
	host := player("host")

	game, err := svc.CreateGame(context.Background(), host, CreateGameInput{
		VenueID:         "sunset-courts",
		StartsAt:        testNow.Add(time.Hour),
		DurationMinutes: 90,
		SkillLevel:      model.SkillAllLevels,
		MaxPlayers:      4,
		CostPerPlayer:   decimal.NewFromInt(200),
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, game.ID)
	assert.Equal(t, model.GameStatusActive, game.Status)
	assert.Len(t, games.games, 1)
	// Hosting books the host's own spot.
	assert.Equal(t, model.BookingStatusConfirmed, bookings.statusOf(t, game.ID, host.ID))
}

func TestGameService_CreateGame_Errors(t *testing.T) {
	bookings := newMemBookingRepo()
	svc, _, _ := newTestGameService(bookings)
	host := player("host")

	_, err := svc.CreateGame(context.Background(), nil, CreateGameInput{})
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)

	_, err = svc.CreateGame(context.Background(), host, CreateGameInput{
		VenueID:  "sunset-courts",
		StartsAt: testNow.Add(-time.Minute),
	})
	assert.ErrorIs(t, err, errors.ErrGameStarted)

	_, err = svc.CreateGame(context.Background(), host, CreateGameInput{
		VenueID:  "no-such-venue",
		StartsAt: testNow.Add(time.Hour),
	})
	assert.ErrorIs(t, err, errors.ErrVenueNotFound)
}

func TestGameService_JoinGame_CapacityCutoff(t *testing.T) {
	game := gameFixture(2)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)

	first, err := svc.JoinGame(context.Background(), player("first"), game.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, first.Status)

	second, err := svc.JoinGame(context.Background(), player("second"), game.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, second.Status)

	// Game is full; the third player goes on the waitlist.
	third, err := svc.JoinGame(context.Background(), player("third"), game.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingStatusWaiting, third.Status)
}

func TestGameService_JoinGame_AlreadyBooked(t *testing.T) {
	game := gameFixture(4)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)
	caller := player("repeat")

	_, err := svc.JoinGame(context.Background(), caller, game.ID)
	assert.NoError(t, err)
	_, err = svc.JoinGame(context.Background(), caller, game.ID)
	assert.ErrorIs(t, err, errors.ErrAlreadyBooked)
	assert.Len(t, bookings.bookings, 1)
}

func TestGameService_JoinGame_ReactivatesCancelledBooking(t *testing.T) {
	game := gameFixture(4)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)
	caller := player("rejoiner")

	booking, err := svc.JoinGame(context.Background(), caller, game.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.CancelBooking(context.Background(), caller, booking.ID))

	rejoined, err := svc.JoinGame(context.Background(), caller, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, booking.ID, rejoined.ID)
	assert.Equal(t, model.BookingStatusConfirmed, rejoined.Status)
	assert.Len(t, bookings.bookings, 1)
}

func TestGameService_JoinGame_GameStartedOrMissing(t *testing.T) {
	started := gameFixture(4)
	started.StartsAt = testNow.Add(-time.Hour)
	bookings := newMemBookingRepo(started)
	svc, _, _ := newTestGameService(bookings)

	_, err := svc.JoinGame(context.Background(), player("late"), started.ID)
	assert.ErrorIs(t, err, errors.ErrGameStarted)

	_, err = svc.JoinGame(context.Background(), player("lost"), uuid.New())
	assert.ErrorIs(t, err, errors.ErrGameNotFound)

	_, err = svc.JoinGame(context.Background(), nil, started.ID)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestGameService_CancelBooking_PromotesEarliestWaitlisted(t *testing.T) {
	game := gameFixture(1)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)
	holder := player("holder")
	queued := player("queued")
	later := player("later")

	held, err := svc.JoinGame(context.Background(), holder, game.ID)
	assert.NoError(t, err)
	_, err = svc.JoinGame(context.Background(), queued, game.ID)
	assert.NoError(t, err)
	_, err = svc.JoinGame(context.Background(), later, game.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.CancelBooking(context.Background(), holder, held.ID))

	assert.Equal(t, model.BookingStatusCancelled, bookings.statusOf(t, game.ID, holder.ID))
	// The earliest waitlisted player takes the freed spot.
	assert.Equal(t, model.BookingStatusConfirmed, bookings.statusOf(t, game.ID, queued.ID))
	assert.Equal(t, model.BookingStatusWaiting, bookings.statusOf(t, game.ID, later.ID))
}

func TestGameService_CancelBooking_WaitlistedCancelDoesNotPromote(t *testing.T) {
	game := gameFixture(1)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)
	holder := player("holder")
	queued := player("queued")
	later := player("later")

	_, err := svc.JoinGame(context.Background(), holder, game.ID)
	assert.NoError(t, err)
	waiting, err := svc.JoinGame(context.Background(), queued, game.ID)
	assert.NoError(t, err)
	_, err = svc.JoinGame(context.Background(), later, game.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.CancelBooking(context.Background(), queued, waiting.ID))

	assert.Equal(t, model.BookingStatusConfirmed, bookings.statusOf(t, game.ID, holder.ID))
	assert.Equal(t, model.BookingStatusWaiting, bookings.statusOf(t, game.ID, later.ID))
}

func TestGameService_CancelBooking_OnlyOwnBooking(t *testing.T) {
	game := gameFixture(4)
	bookings := newMemBookingRepo(game)
	svc, _, _ := newTestGameService(bookings)
	owner := player("owner")
	stranger := player("stranger")

	booking, err := svc.JoinGame(context.Background(), owner, game.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.CancelBooking(context.Background(), stranger, booking.ID), errors.ErrForbidden)
	assert.ErrorIs(t, svc.CancelBooking(context.Background(), owner, uuid.New()), errors.ErrBookingNotFound)
	assert.ErrorIs(t, svc.CancelBooking(context.Background(), nil, booking.ID), errors.ErrUnauthenticated)
	assert.Equal(t, model.BookingStatusConfirmed, bookings.statusOf(t, game.ID, owner.ID))
}

func TestGameService_ListBookings_SplitsOnStartTime(t *testing.T) {
	upcoming := gameFixture(4)
	played := gameFixture(4)
	played.StartsAt = testNow.Add(-24 * time.Hour)
	bookings := newMemBookingRepo(upcoming, played)
	svc, _, _ := newTestGameService(bookings)
	caller := player("caller")

	_, err := svc.JoinGame(context.Background(), caller, upcoming.ID)
	assert.NoError(t, err)
	assert.NoError(t, bookings.Create(context.Background(), &model.Booking{
		GameID: played.ID,
		UserID: caller.ID,
		Status: model.BookingStatusConfirmed,
	}))

	current, err := svc.ListBookings(context.Background(), caller, repository.BookingScopeCurrent)
	assert.NoError(t, err)
	assert.Len(t, current, 1)
	assert.Equal(t, upcoming.ID, current[0].GameID)

	previous, err := svc.ListBookings(context.Background(), caller, repository.BookingScopePrevious)
	assert.NoError(t, err)
	assert.Len(t, previous, 1)
	assert.Equal(t, played.ID, previous[0].GameID)

	_, err = svc.ListBookings(context.Background(), nil, repository.BookingScopeCurrent)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}
