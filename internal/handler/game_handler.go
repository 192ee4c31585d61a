package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
	"picklesaathi/internal/service"
)

// GameHandler handles game and booking endpoints.
type GameHandler struct {
	identity service.IdentityService
	games    service.GameService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(identity service.IdentityService, games service.GameService) *GameHandler {
	return &GameHandler{identity: identity, games: games}
}

// CreateGameRequest represents the host-a-game form.
type CreateGameRequest struct {
	VenueID         string `json:"venue_id" validate:"required"`
	StartsAt        string `json:"starts_at" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=30,max=240"`
	SkillLevel      string `json:"skill_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED PROFESSIONAL ALL"`
	MaxPlayers      int    `json:"max_players" validate:"required,min=2,max=16"`
	CostPerPlayer   string `json:"cost_per_player" validate:"required"`
	Description     string `json:"description" validate:"max=2000"`
}

// CreateGame godoc
// @Summary Host a new game at a venue
// @Tags games
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGameRequest true "Game data"
// @Success 201 {object} model.Game
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /games [post]
func (h *GameHandler) CreateGame(c echo.Context) error {
	var req CreateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "starts_at must be RFC 3339",
			Code:  "INVALID_TIME",
		})
	}
	cost, err := decimal.NewFromString(req.CostPerPlayer)
	if err != nil || cost.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid cost_per_player",
			Code:  "INVALID_AMOUNT",
		})
	}

	host, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	game, err := h.games.CreateGame(c.Request().Context(), host, service.CreateGameInput{
		VenueID:         req.VenueID,
		StartsAt:        startsAt,
		DurationMinutes: req.DurationMinutes,
		SkillLevel:      model.SkillLevel(req.SkillLevel),
		MaxPlayers:      req.MaxPlayers,
		CostPerPlayer:   cost,
		Description:     req.Description,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, game)
}

// ListGames godoc
// @Summary List upcoming games, soonest first
// @Tags games
// @Produce json
// @Param venue query string false "Venue id filter"
// @Param skill_level query string false "Skill level filter"
// @Success 200 {array} model.Game
// @Router /games [get]
func (h *GameHandler) ListGames(c echo.Context) error {
	filter := repository.GameFilter{
		VenueID:    c.QueryParam("venue"),
		SkillLevel: model.SkillLevel(c.QueryParam("skill_level")),
	}
	games, err := h.games.ListUpcoming(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, games)
}

// JoinGame godoc
// @Summary Book a spot in a game
// @Tags games
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game ID"
// @Success 201 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /games/{id}/join [post]
func (h *GameHandler) JoinGame(c echo.Context) error {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid game id",
			Code:  "INVALID_UUID",
		})
	}

	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	booking, err := h.games.JoinGame(c.Request().Context(), caller, gameID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary Cancel one of the signed-in player's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *GameHandler) CancelBooking(c echo.Context) error {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking id",
			Code:  "INVALID_UUID",
		})
	}

	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.games.CancelBooking(c.Request().Context(), caller, bookingID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// MyBookings godoc
// @Summary List the signed-in player's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param scope query string false "current or previous" default(current)
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/bookings [get]
func (h *GameHandler) MyBookings(c echo.Context) error {
	caller, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	scope := repository.BookingScope(c.QueryParam("scope"))
	if scope != repository.BookingScopePrevious {
		scope = repository.BookingScopeCurrent
	}

	bookings, err := h.games.ListBookings(c.Request().Context(), caller, scope)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookings)
}
