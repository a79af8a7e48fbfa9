package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EngineBibleVerse  = "bible_verse"
	EngineDevotional  = "devotional"
	EngineVideo       = "video"
	EngineSong        = "song"
	EngineSermon      = "sermon"
	EngineResource    = "resource"
	EngineFlourishing = "flourishing"
)

// ValidEngineType reports whether s names one of the seven engines.
func ValidEngineType(s string) bool {
	switch s {
	case EngineBibleVerse, EngineDevotional, EngineVideo, EngineSong, EngineSermon, EngineResource, EngineFlourishing:
		return true
	}
	return false
}

const (
	RunStatusPending   = "pending"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PersonalizationRun is the audit ledger for one generator invocation.
// It is created pending and mutated exactly once, to completed or failed.
// Terminal states are final; a failed run is never retried in place.
type PersonalizationRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EngineType string         `gorm:"column:engine_type;not null;index" json:"engine_type"`
	Status     string         `gorm:"column:status;not null;index" json:"status"`
	InputData  datatypes.JSON `gorm:"type:jsonb;column:input_data" json:"input_data"`
	OutputData datatypes.JSON `gorm:"type:jsonb;column:output_data" json:"output_data,omitempty"`
	Error      string         `gorm:"column:error" json:"error,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (PersonalizationRun) TableName() string { return "personalization_run" }
