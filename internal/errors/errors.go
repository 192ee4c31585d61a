package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a referenced user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrVenueNotFound is returned when a referenced venue does not exist.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrGameNotFound is returned when a referenced game does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrBookingNotFound is returned when a referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrPhotoNotFound is returned when a referenced photo does not exist.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrUnauthenticated is returned when a mutation has no verified caller.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller does not own the target resource.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidClaims is returned when the provider claims carry no email address.
	ErrInvalidClaims = errors.New("identity claims carry no email address")
	// ErrInvalidScore is returned when a rating score is not a number.
	ErrInvalidScore = errors.New("score must be a number")
	// ErrSelfRating is returned when a player tries to rate themselves.
	ErrSelfRating = errors.New("players cannot rate themselves")
	// ErrAlreadyBooked is returned when the caller already holds a spot in the game.
	ErrAlreadyBooked = errors.New("already booked for this game")
	// ErrGameStarted is returned when the game's start time has already passed.
	ErrGameStarted = errors.New("game has already started")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrVenueNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VENUE_NOT_FOUND")
	case errors.Is(err, ErrGameNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GAME_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrPhotoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PHOTO_NOT_FOUND")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidClaims):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CLAIMS")
	case errors.Is(err, ErrInvalidScore):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SCORE")
	case errors.Is(err, ErrSelfRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_RATING")
	case errors.Is(err, ErrAlreadyBooked):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_BOOKED")
	case errors.Is(err, ErrGameStarted):
		return NewHTTPError(http.StatusConflict, err.Error(), "GAME_STARTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
