package model

import (
	"time"

	"gorm.io/datatypes"
)

// Venue is one court location players can host games at. The ID is a
// human-readable slug ("metro-courts") so it can double as a form value.
type Venue struct {
	ID        string         `json:"id" gorm:"primaryKey;size:64"`
	Name      string         `json:"name" gorm:"size:255;not null"`
	Location  string         `json:"location" gorm:"size:128;not null;index"`
	Courts    int            `json:"courts" gorm:"not null;default:1"`
	Surface   string         `json:"surface" gorm:"size:64"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
