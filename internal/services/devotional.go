package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

type DevotionalService interface {
	GetLatest(ctx context.Context, userID uuid.UUID) (*types.Devotional, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Devotional, error)
	MarkRead(ctx context.Context, userID, devotionalID uuid.UUID) error
}

type devotionalService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.DevotionalRepo
	activity ActivityService
}

func NewDevotionalService(db *gorm.DB, baseLog *logger.Logger, repo repos.DevotionalRepo, activity ActivityService) DevotionalService {
	return &devotionalService{
		db:       db,
		log:      baseLog.With("service", "DevotionalService"),
		repo:     repo,
		activity: activity,
	}
}

func (s *devotionalService) GetLatest(ctx context.Context, userID uuid.UUID) (*types.Devotional, error) {
	return s.repo.GetLatestByUserID(ctx, nil, userID)
}

func (s *devotionalService) List(ctx context.Context, userID uuid.UUID) ([]*types.Devotional, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}

func (s *devotionalService) MarkRead(ctx context.Context, userID, devotionalID uuid.UUID) error {
	if userID == uuid.Nil || devotionalID == uuid.Nil {
		return fmt.Errorf("user id and devotional id required")
	}
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if uErr := s.repo.UpdateFields(ctx, tx, userID, devotionalID, map[string]interface{}{
			"read_at": now,
		}); uErr != nil {
			return uErr
		}
		_, aErr := s.activity.Log(ctx, tx, userID, types.EventDevotionalRead, map[string]any{
			"devotional_id": devotionalID.String(),
		})
		return aErr
	})
	return err
}
