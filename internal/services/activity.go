package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

// summaryEventLimit caps how much history a prompt sees.
const summaryEventLimit = 50

// Recency tag boundaries, 0-based positions in the newest-first event list.
// These tags are prompt-level bias only; nothing numeric is computed here.
const (
	recentBoundary   = 10
	moderateBoundary = 25
)

var validEventTypes = map[string]bool{
	types.EventMood:           true,
	types.EventPrayer:         true,
	types.EventBibleRead:      true,
	types.EventDevotionalRead: true,
	types.EventNoteCreated:    true,
	types.EventGuideChat:      true,
	types.EventVideoWatched:   true,
	types.EventSongListened:   true,
	types.EventResourceRead:   true,
}

type ActivityService interface {
	Log(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, eventData map[string]any) (*types.ActivityEvent, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.ActivityEvent, error)
	Summarize(ctx context.Context, userID uuid.UUID) (string, error)
}

type activityService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.ActivityEventRepo
}

func NewActivityService(db *gorm.DB, baseLog *logger.Logger, repo repos.ActivityEventRepo) ActivityService {
	return &activityService{
		db:   db,
		log:  baseLog.With("service", "ActivityService"),
		repo: repo,
	}
}

func (s *activityService) Log(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, eventData map[string]any) (*types.ActivityEvent, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	eventType = strings.TrimSpace(strings.ToLower(eventType))
	if !validEventTypes[eventType] {
		return nil, fmt.Errorf("invalid event type %q", eventType)
	}

	var data datatypes.JSON
	if len(eventData) > 0 {
		b, err := json.Marshal(eventData)
		if err != nil {
			return nil, fmt.Errorf("marshal event data: %w", err)
		}
		data = datatypes.JSON(b)
	}

	now := time.Now().UTC()
	rows := []*types.ActivityEvent{{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: eventType,
		EventData: data,
		CreatedAt: now,
	}}
	created, err := s.repo.Create(ctx, tx, rows)
	if err != nil {
		s.log.Warn("activity log failed", "event_type", eventType, "error", err)
		return nil, err
	}
	return created[0], nil
}

func (s *activityService) List(ctx context.Context, userID uuid.UUID) ([]*types.ActivityEvent, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}

// Summarize renders the user's recent activity as a recency-tagged text block
// for prompt templates. Zero events produce an empty string; generators must
// still build a valid prompt from that.
func (s *activityService) Summarize(ctx context.Context, userID uuid.UUID) (string, error) {
	events, err := s.repo.GetRecentByUserID(ctx, nil, userID, summaryEventLimit)
	if err != nil {
		return "", err
	}
	return formatActivitySummary(events), nil
}

func recencyTag(position int) string {
	switch {
	case position < recentBoundary:
		return "[RECENT]"
	case position < moderateBoundary:
		return "[MODERATE]"
	default:
		return "[OLDER]"
	}
}

// formatActivitySummary expects events ordered newest-first.
func formatActivitySummary(events []*types.ActivityEvent) string {
	if len(events) == 0 {
		return ""
	}
	lines := make([]string, 0, len(events))
	for i, ev := range events {
		line := recencyTag(i) + " " + ev.EventType
		if len(ev.EventData) > 0 {
			line += ": " + string(ev.EventData)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
