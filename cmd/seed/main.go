package main

import (
	"context"
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	"picklesaathi/internal/config"
	"picklesaathi/internal/db"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
	"picklesaathi/internal/service"
)

// seedVenue is one catalog entry before conversion into a model row.
type seedVenue struct {
	ID        string
	Name      string
	Location  string
	Courts    int
	Surface   string
	Amenities []string
}

var venueCatalog = []seedVenue{
	{ID: "abc-sports-arena", Name: "ABC Sports Arena", Location: "Bopal", Courts: 4, Surface: "Indoor Hard Court", Amenities: []string{"Parking", "Restrooms", "Water"}},
	{ID: "metro-courts", Name: "Metro Courts", Location: "Prahlad Nagar", Courts: 2, Surface: "Outdoor Concrete", Amenities: []string{"Parking", "Lighting"}},
	{ID: "green-valley-club", Name: "Green Valley Club", Location: "SG Highway", Courts: 3, Surface: "Indoor Synthetic", Amenities: []string{"Cafeteria", "Restrooms", "Pro Shop"}},
	{ID: "elite-courts", Name: "Elite Courts", Location: "Bodakdev", Courts: 2, Surface: "Indoor Hard Court", Amenities: []string{"AC", "Restrooms"}},
	{ID: "community-center", Name: "Community Center", Location: "Navrangpura", Courts: 2, Surface: "Outdoor Asphalt", Amenities: []string{"Free Parking"}},
	{ID: "sports-hub", Name: "Sports Hub", Location: "Maninagar", Courts: 3, Surface: "Indoor Composite", Amenities: []string{"Equipment Rental", "Restrooms"}},
}

func main() {
	log.Println("Starting venue seed...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Venue{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	venues := make([]model.Venue, 0, len(venueCatalog))
	for _, item := range venueCatalog {
		amenities, err := json.Marshal(item.Amenities)
		if err != nil {
			log.Fatalf("Failed to encode amenities for %s: %v", item.ID, err)
		}
		venues = append(venues, model.Venue{
			ID:        item.ID,
			Name:      item.Name,
			Location:  item.Location,
			Courts:    item.Courts,
			Surface:   item.Surface,
			Amenities: datatypes.JSON(amenities),
		})
	}

	venueService := service.NewVenueService(repository.NewVenueRepository(gormDB))

	created, updated, err := venueService.SeedVenues(context.Background(), venues)
	if err != nil {
		log.Fatalf("Failed to seed venues: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New venues created: %d", created)
	log.Printf("  - Existing venues updated: %d", updated)
	log.Printf("  - Total venues processed: %d", created+updated)
}
