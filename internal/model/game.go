package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SkillAllLevels marks a game open to players of every skill level.
const SkillAllLevels SkillLevel = "ALL"

// GameStatus represents the lifecycle state of a hosted game.
type GameStatus string

const (
	GameStatusActive    GameStatus = "active"
	GameStatusCancelled GameStatus = "cancelled"
	GameStatusCompleted GameStatus = "completed"
)

// Game is a hosted session at a venue that players book spots in.
type Game struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	VenueID         string          `json:"venue_id" gorm:"size:64;not null;index"`
	HostID          uuid.UUID       `json:"host_id" gorm:"type:char(36);not null;index"`
	StartsAt        time.Time       `json:"starts_at" gorm:"not null;index"`
	DurationMinutes int             `json:"duration_minutes" gorm:"not null;default:60"`
	SkillLevel      SkillLevel      `json:"skill_level" gorm:"type:varchar(16);not null;default:'ALL';index"`
	MaxPlayers      int             `json:"max_players" gorm:"not null"`
	CostPerPlayer   decimal.Decimal `json:"cost_per_player" gorm:"type:decimal(10,2);not null;default:0"`
	Description     string          `json:"description,omitempty" gorm:"type:text"`
	Status          GameStatus      `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Venue    Venue     `json:"venue,omitempty" gorm:"foreignKey:VenueID"`
	Host     User      `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Bookings []Booking `json:"-" gorm:"foreignKey:GameID"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
