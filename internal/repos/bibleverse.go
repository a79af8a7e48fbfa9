package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type BibleVerseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, verses []*types.BibleVerse) ([]*types.BibleVerse, error)
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.BibleVerse, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BibleVerse, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error
}

type bibleVerseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBibleVerseRepo(db *gorm.DB, baseLog *logger.Logger) BibleVerseRepo {
	repoLog := baseLog.With("repo", "BibleVerseRepo")
	return &bibleVerseRepo{db: db, log: repoLog}
}

func (r *bibleVerseRepo) Create(ctx context.Context, tx *gorm.DB, verses []*types.BibleVerse) ([]*types.BibleVerse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(verses) == 0 {
		return []*types.BibleVerse{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&verses).Error; err != nil {
		return nil, err
	}
	return verses, nil
}

func (r *bibleVerseRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.BibleVerse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	var verse types.BibleVerse
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&verse).Error
	if err != nil {
		return nil, err
	}
	if verse.ID == uuid.Nil {
		return nil, nil
	}
	return &verse, nil
}

func (r *bibleVerseRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BibleVerse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.BibleVerse
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

func (r *bibleVerseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.BibleVerse{}).
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
