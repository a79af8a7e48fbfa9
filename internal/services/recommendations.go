package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

const recommendationListLimit = 20

// RecommendationService is the read side of the four list features.
type RecommendationService interface {
	ListVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error)
	ListSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error)
	ListSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error)
	ListResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	videoRepo    repos.VideoRepo
	songRepo     repos.SongRepo
	sermonRepo   repos.SermonRepo
	resourceRepo repos.ResourceRepo
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	videoRepo repos.VideoRepo,
	songRepo repos.SongRepo,
	sermonRepo repos.SermonRepo,
	resourceRepo repos.ResourceRepo,
) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          baseLog.With("service", "RecommendationService"),
		videoRepo:    videoRepo,
		songRepo:     songRepo,
		sermonRepo:   sermonRepo,
		resourceRepo: resourceRepo,
	}
}

func (s *recommendationService) ListVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error) {
	return s.videoRepo.GetRecentByUserID(ctx, nil, userID, recommendationListLimit)
}

func (s *recommendationService) ListSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error) {
	return s.songRepo.GetRecentByUserID(ctx, nil, userID, recommendationListLimit)
}

func (s *recommendationService) ListSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error) {
	return s.sermonRepo.GetRecentByUserID(ctx, nil, userID, recommendationListLimit)
}

func (s *recommendationService) ListResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error) {
	return s.resourceRepo.GetRecentByUserID(ctx, nil, userID, recommendationListLimit)
}
