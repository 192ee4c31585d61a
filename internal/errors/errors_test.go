package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrVenueNotFound, http.StatusNotFound, "VENUE_NOT_FOUND"},
		{ErrGameNotFound, http.StatusNotFound, "GAME_NOT_FOUND"},
		{ErrBookingNotFound, http.StatusNotFound, "BOOKING_NOT_FOUND"},
		{ErrPhotoNotFound, http.StatusNotFound, "PHOTO_NOT_FOUND"},
		{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrInvalidClaims, http.StatusBadRequest, "INVALID_CLAIMS"},
		{ErrInvalidScore, http.StatusBadRequest, "INVALID_SCORE"},
		{ErrSelfRating, http.StatusBadRequest, "SELF_RATING"},
		{ErrAlreadyBooked, http.StatusConflict, "ALREADY_BOOKED"},
		{ErrGameStarted, http.StatusConflict, "GAME_STARTED"},
	}

	for _, tt := range tests {
		httpErr := MapErrorToHTTP(tt.err)
		assert.Equal(t, tt.status, httpErr.StatusCode, tt.code)
		assert.Equal(t, tt.code, httpErr.Code)
		assert.Equal(t, tt.err.Error(), httpErr.Message)
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("join game: %w", ErrAlreadyBooked))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "ALREADY_BOOKED", httpErr.Code)
}

func TestMapErrorToHTTP_UnknownErrorHidesDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("dial tcp: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestHTTPError_ToErrorResponse(t *testing.T) {
	httpErr := NewHTTPError(http.StatusNotFound, "user not found", "USER_NOT_FOUND")
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "user not found", resp.Error)
	assert.Equal(t, "USER_NOT_FOUND", resp.Code)
	assert.Equal(t, "user not found", httpErr.Error())
}
