package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserPhoto is an image owned by exactly one user, shown most recent first.
type UserPhoto struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *UserPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
