package types

import (
	"time"

	"github.com/google/uuid"
)

type Mood struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Feeling   string    `gorm:"not null;column:feeling" json:"feeling"`
	Intensity int       `gorm:"column:intensity;not null;default:3" json:"intensity"`
	Note      string    `gorm:"column:note" json:"note"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Mood) TableName() string { return "mood" }
