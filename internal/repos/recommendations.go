package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

// The four list-artifact repos (video, song, sermon, resource) share the same
// shape: batch insert in array order, fetch by owning run, fetch recent for a
// user. Rows are never mutated after creation.

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error)
	GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Video, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Video, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (r *videoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(videos) == 0 {
		return []*types.Video{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Video
	if runID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("personalization_run_id = ?", runID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *videoRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Video
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, position ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type SongRepo interface {
	Create(ctx context.Context, tx *gorm.DB, songs []*types.Song) ([]*types.Song, error)
	GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Song, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Song, error)
}

type songRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSongRepo(db *gorm.DB, baseLog *logger.Logger) SongRepo {
	return &songRepo{db: db, log: baseLog.With("repo", "SongRepo")}
}

func (r *songRepo) Create(ctx context.Context, tx *gorm.DB, songs []*types.Song) ([]*types.Song, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(songs) == 0 {
		return []*types.Song{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Song, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Song
	if runID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("personalization_run_id = ?", runID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *songRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Song, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Song
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, position ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type SermonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sermons []*types.Sermon) ([]*types.Sermon, error)
	GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Sermon, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Sermon, error)
}

type sermonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSermonRepo(db *gorm.DB, baseLog *logger.Logger) SermonRepo {
	return &sermonRepo{db: db, log: baseLog.With("repo", "SermonRepo")}
}

func (r *sermonRepo) Create(ctx context.Context, tx *gorm.DB, sermons []*types.Sermon) ([]*types.Sermon, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sermons) == 0 {
		return []*types.Sermon{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sermons).Error; err != nil {
		return nil, err
	}
	return sermons, nil
}

func (r *sermonRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Sermon, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Sermon
	if runID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("personalization_run_id = ?", runID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sermonRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Sermon, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Sermon
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, position ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
	GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Resource, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Resource, error)
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(resources) == 0 {
		return []*types.Resource{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Resource
	if runID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("personalization_run_id = ?", runID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Resource
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, position ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
