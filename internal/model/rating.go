package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rating is one reviewer's assessment of one player. The (UserID,
// ReviewerID) pair is unique: a repeat submission from the same reviewer
// updates the existing row in place.
type Rating struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_ratings_user_reviewer"`
	ReviewerID uuid.UUID       `json:"reviewer_id" gorm:"type:char(36);not null;uniqueIndex:idx_ratings_user_reviewer"`
	Score      decimal.Decimal `json:"score" gorm:"type:decimal(4,2);not null"`
	Review     string          `json:"review" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User     User `json:"-" gorm:"foreignKey:UserID"`
	Reviewer User `json:"-" gorm:"foreignKey:ReviewerID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RatingSummary is the recomputed aggregate for a rated player.
type RatingSummary struct {
	Average decimal.Decimal `json:"average"`
	Count   int64           `json:"count"`
}
