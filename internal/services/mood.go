package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

type MoodService interface {
	Create(ctx context.Context, userID uuid.UUID, feeling string, intensity int, note string) (*types.Mood, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Mood, error)
}

type moodService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.MoodRepo
	activity ActivityService
}

func NewMoodService(db *gorm.DB, baseLog *logger.Logger, repo repos.MoodRepo, activity ActivityService) MoodService {
	return &moodService{
		db:       db,
		log:      baseLog.With("service", "MoodService"),
		repo:     repo,
		activity: activity,
	}
}

func (s *moodService) Create(ctx context.Context, userID uuid.UUID, feeling string, intensity int, note string) (*types.Mood, error) {
	feeling = strings.TrimSpace(strings.ToLower(feeling))
	if feeling == "" {
		return nil, fmt.Errorf("feeling required")
	}
	if intensity < 1 {
		intensity = 1
	}
	if intensity > 5 {
		intensity = 5
	}

	mood := &types.Mood{
		ID:        uuid.New(),
		UserID:    userID,
		Feeling:   feeling,
		Intensity: intensity,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.repo.Create(ctx, tx, []*types.Mood{mood}); cErr != nil {
			return cErr
		}
		_, aErr := s.activity.Log(ctx, tx, userID, types.EventMood, map[string]any{
			"feeling":   feeling,
			"intensity": intensity,
		})
		return aErr
	})
	if err != nil {
		return nil, err
	}
	return mood, nil
}

func (s *moodService) List(ctx context.Context, userID uuid.UUID) ([]*types.Mood, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}
