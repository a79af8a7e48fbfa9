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

type PrayerService interface {
	Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Prayer, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Prayer, error)
	MarkAnswered(ctx context.Context, userID, prayerID uuid.UUID) error
}

type prayerService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.PrayerRepo
	activity ActivityService
}

func NewPrayerService(db *gorm.DB, baseLog *logger.Logger, repo repos.PrayerRepo, activity ActivityService) PrayerService {
	return &prayerService{
		db:       db,
		log:      baseLog.With("service", "PrayerService"),
		repo:     repo,
		activity: activity,
	}
}

func (s *prayerService) Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Prayer, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("prayer title required")
	}

	now := time.Now().UTC()
	prayer := &types.Prayer{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      strings.TrimSpace(body),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.repo.Create(ctx, tx, []*types.Prayer{prayer}); cErr != nil {
			return cErr
		}
		_, aErr := s.activity.Log(ctx, tx, userID, types.EventPrayer, map[string]any{"title": title})
		return aErr
	})
	if err != nil {
		return nil, err
	}
	return prayer, nil
}

func (s *prayerService) List(ctx context.Context, userID uuid.UUID) ([]*types.Prayer, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}

func (s *prayerService) MarkAnswered(ctx context.Context, userID, prayerID uuid.UUID) error {
	if userID == uuid.Nil || prayerID == uuid.Nil {
		return fmt.Errorf("user id and prayer id required")
	}
	now := time.Now().UTC()
	return s.repo.UpdateFields(ctx, nil, userID, prayerID, map[string]interface{}{
		"answered":    true,
		"answered_at": now,
	})
}
