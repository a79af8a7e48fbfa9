package types

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PersonalizationRunID uuid.UUID           `gorm:"type:uuid;not null;index" json:"personalization_run_id"`
	PersonalizationRun   *PersonalizationRun `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonalizationRunID;references:ID" json:"personalization_run,omitempty"`
	Title                string              `gorm:"not null;column:title" json:"title"`
	Author               string              `gorm:"column:author" json:"author"`
	ResourceType         string              `gorm:"column:resource_type" json:"resource_type"`
	Description          string              `gorm:"column:description" json:"description"`
	Reason               string              `gorm:"column:reason" json:"reason"`
	Position             int                 `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt            time.Time           `gorm:"not null;default:now();index" json:"created_at"`
}

func (Resource) TableName() string { return "resource" }
