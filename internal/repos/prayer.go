package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type PrayerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, prayers []*types.Prayer) ([]*types.Prayer, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Prayer, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error
}

type prayerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrayerRepo(db *gorm.DB, baseLog *logger.Logger) PrayerRepo {
	repoLog := baseLog.With("repo", "PrayerRepo")
	return &prayerRepo{db: db, log: repoLog}
}

func (r *prayerRepo) Create(ctx context.Context, tx *gorm.DB, prayers []*types.Prayer) ([]*types.Prayer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(prayers) == 0 {
		return []*types.Prayer{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&prayers).Error; err != nil {
		return nil, err
	}
	return prayers, nil
}

func (r *prayerRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Prayer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Prayer
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

func (r *prayerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Prayer{}).
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
