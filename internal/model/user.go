package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SkillLevel grades a player's ability.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillProfessional SkillLevel = "PROFESSIONAL"
)

// User represents one player. ExternalID is the subject id issued by the
// identity provider; it stays nil on rows that predate the provider until
// reconciliation backfills it by email.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ExternalID   *string    `json:"external_id,omitempty" gorm:"uniqueIndex;size:64"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string     `json:"name" gorm:"size:255"`
	Username     string     `json:"username" gorm:"size:64;not null;index"`
	AvatarURL    string     `json:"avatar_url,omitempty" gorm:"size:512"`
	Location     string     `json:"location" gorm:"size:128;index"`
	SkillLevel   SkillLevel `json:"skill_level" gorm:"type:varchar(16);default:'BEGINNER';index"`
	Phone        string     `json:"phone,omitempty" gorm:"size:32"`
	Bio          string     `json:"bio,omitempty" gorm:"type:text"`
	PlayingStyle string     `json:"playing_style,omitempty" gorm:"size:128"`

	// Rating and TotalReviews are derived from the Rating rows and are
	// rewritten on every rating submission, never edited directly.
	Rating       decimal.Decimal `json:"rating" gorm:"type:decimal(4,2);not null;default:0"`
	TotalReviews int             `json:"total_reviews" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Photos          []UserPhoto `json:"photos,omitempty" gorm:"foreignKey:UserID"`
	RatingsReceived []Rating    `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Linked reports whether the row already carries an external subject id.
func (u *User) Linked() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}
