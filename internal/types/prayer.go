package types

import (
	"time"

	"github.com/google/uuid"
)

type Prayer struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title      string     `gorm:"not null;column:title" json:"title"`
	Body       string     `gorm:"column:body" json:"body"`
	Answered   bool       `gorm:"column:answered;not null;default:false" json:"answered"`
	AnsweredAt *time.Time `gorm:"column:answered_at" json:"answered_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Prayer) TableName() string { return "prayer" }
