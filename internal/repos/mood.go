package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type MoodRepo interface {
	Create(ctx context.Context, tx *gorm.DB, moods []*types.Mood) ([]*types.Mood, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Mood, error)
}

type moodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodRepo(db *gorm.DB, baseLog *logger.Logger) MoodRepo {
	repoLog := baseLog.With("repo", "MoodRepo")
	return &moodRepo{db: db, log: repoLog}
}

func (r *moodRepo) Create(ctx context.Context, tx *gorm.DB, moods []*types.Mood) ([]*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(moods) == 0 {
		return []*types.Mood{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

func (r *moodRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Mood, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Mood
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
