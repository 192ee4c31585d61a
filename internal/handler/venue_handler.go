package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"picklesaathi/internal/errors"
	"picklesaathi/internal/service"
)

// VenueHandler handles venue catalog endpoints.
type VenueHandler struct {
	venues service.VenueService
}

// NewVenueHandler creates a new venue handler.
func NewVenueHandler(venues service.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// ListVenues godoc
// @Summary List venues, optionally filtered by location
// @Tags venues
// @Produce json
// @Param location query string false "Location filter"
// @Success 200 {array} model.Venue
// @Router /venues [get]
func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.venues.ListVenues(c.Request().Context(), c.QueryParam("location"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, venues)
}
