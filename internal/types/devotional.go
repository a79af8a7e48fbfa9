package types

import (
	"time"

	"github.com/google/uuid"
)

type Devotional struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PersonalizationRunID uuid.UUID           `gorm:"type:uuid;not null;index" json:"personalization_run_id"`
	PersonalizationRun   *PersonalizationRun `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonalizationRunID;references:ID" json:"personalization_run,omitempty"`
	Title                string              `gorm:"not null;column:title" json:"title"`
	Theme                string              `gorm:"column:theme" json:"theme"`
	ScriptureReference   string              `gorm:"column:scripture_reference" json:"scripture_reference"`
	Content              string              `gorm:"not null;column:content" json:"content"`
	PrayerFocus          string              `gorm:"column:prayer_focus" json:"prayer_focus"`
	ReadAt               *time.Time          `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt            time.Time           `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (Devotional) TableName() string { return "devotional" }
