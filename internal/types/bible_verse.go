package types

import (
	"time"

	"github.com/google/uuid"
)

type BibleVerse struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PersonalizationRunID uuid.UUID           `gorm:"type:uuid;not null;index" json:"personalization_run_id"`
	PersonalizationRun   *PersonalizationRun `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonalizationRunID;references:ID" json:"personalization_run,omitempty"`
	Book                 string              `gorm:"not null;column:book" json:"book"`
	Chapter              int                 `gorm:"not null;column:chapter" json:"chapter"`
	VerseStart           int                 `gorm:"not null;column:verse_start" json:"verse_start"`
	VerseEnd             *int                `gorm:"column:verse_end" json:"verse_end,omitempty"`
	Translation          string              `gorm:"not null;column:translation" json:"translation"`
	Content              string              `gorm:"not null;column:content" json:"content"`
	Reason               string              `gorm:"column:reason" json:"reason"`
	UserNotes            string              `gorm:"column:user_notes" json:"user_notes"`
	CreatedAt            time.Time           `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (BibleVerse) TableName() string { return "bible_verse" }
