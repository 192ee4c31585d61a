package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the state of a player's spot in a game.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusWaiting   BookingStatus = "waiting"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking ties one player to one game. A (GameID, UserID) pair is unique;
// a cancelled booking is reactivated on rejoin instead of duplicated.
type Booking struct {
	ID        uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	GameID    uuid.UUID     `json:"game_id" gorm:"type:char(36);not null;uniqueIndex:idx_bookings_game_user"`
	UserID    uuid.UUID     `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_bookings_game_user"`
	Status    BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:'confirmed';index"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Game Game `json:"game,omitempty" gorm:"foreignKey:GameID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Active reports whether the booking still holds or queues for a spot.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusWaiting
}
