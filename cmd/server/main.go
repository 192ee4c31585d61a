package main

import (
	"log"
	"net/http"
	"os"

	_ "picklesaathi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"picklesaathi/internal/auth"
	"picklesaathi/internal/cache"
	"picklesaathi/internal/config"
	"picklesaathi/internal/db"
	"picklesaathi/internal/handler"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
	"picklesaathi/internal/router"
	"picklesaathi/internal/service"
)

// @title Pickle Saathi API
// @version 1.0
// @description Local pickleball social and booking API: profiles, ratings, games, and venue bookings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Booking{},
			&model.Game{},
			&model.Rating{},
			&model.UserPhoto{},
			&model.Venue{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Rating{},
		&model.UserPhoto{},
		&model.Venue{},
		&model.Game{},
		&model.Booking{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	photoRepo := repository.NewPhotoRepository(gormDB)
	venueRepo := repository.NewVenueRepository(gormDB)
	gameRepo := repository.NewGameRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)

	// Initialize auth components
	identityCache := auth.NewIdentityCache(cacheClient)

	// Initialize services
	identityService := service.NewIdentityService(userRepo, identityCache)
	ratingService := service.NewRatingService(userRepo, ratingRepo, cacheClient)
	profileService := service.NewProfileService(userRepo, photoRepo, ratingRepo, cacheClient)
	gameService := service.NewGameService(gameRepo, bookingRepo, venueRepo)
	venueService := service.NewVenueService(venueRepo)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(identityService, profileService)
	ratingHandler := handler.NewRatingHandler(identityService, ratingService)
	gameHandler := handler.NewGameHandler(identityService, gameService)
	venueHandler := handler.NewVenueHandler(venueService)

	// Register routes
	router.Register(
		e,
		cfg,
		profileHandler,
		ratingHandler,
		gameHandler,
		venueHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
