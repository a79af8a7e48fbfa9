package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type FlourishingScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scores []*types.FlourishingScore) ([]*types.FlourishingScore, error)
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FlourishingScore, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FlourishingScore, error)
}

type flourishingScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlourishingScoreRepo(db *gorm.DB, baseLog *logger.Logger) FlourishingScoreRepo {
	repoLog := baseLog.With("repo", "FlourishingScoreRepo")
	return &flourishingScoreRepo{db: db, log: repoLog}
}

func (r *flourishingScoreRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.FlourishingScore) ([]*types.FlourishingScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(scores) == 0 {
		return []*types.FlourishingScore{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *flourishingScoreRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FlourishingScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	var score types.FlourishingScore
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&score).Error
	if err != nil {
		return nil, err
	}
	if score.ID == uuid.Nil {
		return nil, nil
	}
	return &score, nil
}

func (r *flourishingScoreRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FlourishingScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.FlourishingScore
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
