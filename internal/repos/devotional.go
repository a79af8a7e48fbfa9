package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type DevotionalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, devotionals []*types.Devotional) ([]*types.Devotional, error)
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Devotional, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Devotional, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error
}

type devotionalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDevotionalRepo(db *gorm.DB, baseLog *logger.Logger) DevotionalRepo {
	repoLog := baseLog.With("repo", "DevotionalRepo")
	return &devotionalRepo{db: db, log: repoLog}
}

func (r *devotionalRepo) Create(ctx context.Context, tx *gorm.DB, devotionals []*types.Devotional) ([]*types.Devotional, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(devotionals) == 0 {
		return []*types.Devotional{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&devotionals).Error; err != nil {
		return nil, err
	}
	return devotionals, nil
}

func (r *devotionalRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Devotional, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	var devotional types.Devotional
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&devotional).Error
	if err != nil {
		return nil, err
	}
	if devotional.ID == uuid.Nil {
		return nil, nil
	}
	return &devotional, nil
}

func (r *devotionalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Devotional, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Devotional
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

func (r *devotionalRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || id == uuid.Nil {
		return gorm.ErrRecordNotFound
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	result := transaction.WithContext(ctx).
		Model(&types.Devotional{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
