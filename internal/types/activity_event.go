package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventMood           = "mood"
	EventPrayer         = "prayer"
	EventBibleRead      = "bible_read"
	EventDevotionalRead = "devotional_read"
	EventNoteCreated    = "note_created"
	EventGuideChat      = "guide_chat"
	EventVideoWatched   = "video_watched"
	EventSongListened   = "song_listened"
	EventResourceRead   = "resource_read"
)

// ActivityEvent is the append-only activity log. Rows are never updated or
// deleted; the personalization engine consumes them read-only.
type ActivityEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EventType string         `gorm:"column:event_type;not null;index" json:"event_type"`
	EventData datatypes.JSON `gorm:"type:jsonb;column:event_data" json:"event_data"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (ActivityEvent) TableName() string { return "activity_event" }
