package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

type FlourishingService interface {
	GetLatest(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.FlourishingScore, error)
}

type flourishingService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.FlourishingScoreRepo
}

func NewFlourishingService(db *gorm.DB, baseLog *logger.Logger, repo repos.FlourishingScoreRepo) FlourishingService {
	return &flourishingService{
		db:   db,
		log:  baseLog.With("service", "FlourishingService"),
		repo: repo,
	}
}

func (s *flourishingService) GetLatest(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error) {
	return s.repo.GetLatestByUserID(ctx, nil, userID)
}

func (s *flourishingService) History(ctx context.Context, userID uuid.UUID) ([]*types.FlourishingScore, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}
