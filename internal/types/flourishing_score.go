package types

import (
	"time"

	"github.com/google/uuid"
)

// FlourishingScore holds one wellbeing snapshot: seven 0-100 dimension scores,
// an overall index, and a short model-written insight.
type FlourishingScore struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PersonalizationRunID uuid.UUID           `gorm:"type:uuid;not null;index" json:"personalization_run_id"`
	PersonalizationRun   *PersonalizationRun `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonalizationRunID;references:ID" json:"personalization_run,omitempty"`
	FaithScore           int                 `gorm:"not null;column:faith_score" json:"faith_score"`
	HealthScore          int                 `gorm:"not null;column:health_score" json:"health_score"`
	RelationshipsScore   int                 `gorm:"not null;column:relationships_score" json:"relationships_score"`
	PurposeScore         int                 `gorm:"not null;column:purpose_score" json:"purpose_score"`
	PeaceScore           int                 `gorm:"not null;column:peace_score" json:"peace_score"`
	GratitudeScore       int                 `gorm:"not null;column:gratitude_score" json:"gratitude_score"`
	GrowthScore          int                 `gorm:"not null;column:growth_score" json:"growth_score"`
	OverallScore         int                 `gorm:"not null;column:overall_score" json:"overall_score"`
	AIInsight            string              `gorm:"column:ai_insight" json:"ai_insight"`
	CreatedAt            time.Time           `gorm:"not null;default:now();index" json:"created_at"`
}

func (FlourishingScore) TableName() string { return "flourishing_score" }
