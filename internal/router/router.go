package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"picklesaathi/internal/auth"
	"picklesaathi/internal/config"
	"picklesaathi/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	profileHandler *handler.ProfileHandler,
	ratingHandler *handler.RatingHandler,
	gameHandler *handler.GameHandler,
	venueHandler *handler.VenueHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/venues", venueHandler.ListVenues)
	api.GET("/games", gameHandler.ListGames)
	api.GET("/users/:username", profileHandler.GetProfile)
	api.GET("/users/:username/ratings", ratingHandler.ListRatings)

	// Secured routes (require a verified identity-provider token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.AuthSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.ProviderClaims)
		},
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", profileHandler.Me)
	secured.PUT("/me/profile", profileHandler.UpdateProfile)
	secured.POST("/me/photos", profileHandler.AddPhoto)
	secured.DELETE("/me/photos/:id", profileHandler.DeletePhoto)
	secured.GET("/me/bookings", gameHandler.MyBookings)

	// Rating routes
	secured.POST("/players/:external_id/ratings", ratingHandler.SubmitRating)

	// Game routes
	secured.POST("/games", gameHandler.CreateGame)
	secured.POST("/games/:id/join", gameHandler.JoinGame)
	secured.DELETE("/bookings/:id", gameHandler.CancelBooking)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
