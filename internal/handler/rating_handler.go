package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/service"
)

// RatingHandler handles rating endpoints.
type RatingHandler struct {
	identity service.IdentityService
	ratings  service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(identity service.IdentityService, ratings service.RatingService) *RatingHandler {
	return &RatingHandler{identity: identity, ratings: ratings}
}

// SubmitRatingRequest represents a rating submission. The reviewer is the
// authenticated caller; it is never taken from the payload.
type SubmitRatingRequest struct {
	Score  string `json:"score" validate:"required"`
	Review string `json:"review" validate:"max=2000"`
}

// SubmitRating godoc
// @Summary Rate a player
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param external_id path string true "Rated player's external id"
// @Param request body SubmitRatingRequest true "Rating data"
// @Success 200 {object} model.RatingSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /players/{external_id}/ratings [post]
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	var req SubmitRatingRequest
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

	score, err := decimal.NewFromString(req.Score)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidScore)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	reviewer, err := resolveCaller(c, h.identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	summary, err := h.ratings.Rate(c.Request().Context(), reviewer, c.Param("external_id"), score, req.Review)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}

// ListRatings godoc
// @Summary List ratings a player received, most recent first
// @Tags ratings
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} model.Rating
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/ratings [get]
func (h *RatingHandler) ListRatings(c echo.Context) error {
	ratings, err := h.ratings.ListForUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ratings)
}
