package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type PersonalizationRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*types.PersonalizationRun) ([]*types.PersonalizationRun, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PersonalizationRun, error)
	GetLatestByUserAndEngine(ctx context.Context, tx *gorm.DB, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

	// MarkStalePendingFailed closes the ledger gap left by a crash between run
	// creation and completion: any run still pending past the cutoff is failed.
	MarkStalePendingFailed(ctx context.Context, tx *gorm.DB, olderThan time.Time) (int64, error)
}

type personalizationRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalizationRunRepo(db *gorm.DB, baseLog *logger.Logger) PersonalizationRunRepo {
	repoLog := baseLog.With("repo", "PersonalizationRunRepo")
	return &personalizationRunRepo{db: db, log: repoLog}
}

func (r *personalizationRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.PersonalizationRun) ([]*types.PersonalizationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(runs) == 0 {
		return []*types.PersonalizationRun{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *personalizationRunRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PersonalizationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.PersonalizationRun
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personalizationRunRepo) GetLatestByUserAndEngine(ctx context.Context, tx *gorm.DB, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || engineType == "" {
		return nil, nil
	}

	var run types.PersonalizationRun
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND engine_type = ?", userID, engineType).
		Order("created_at DESC").
		Limit(1).
		Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}

func (r *personalizationRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&types.PersonalizationRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *personalizationRunRepo) MarkStalePendingFailed(ctx context.Context, tx *gorm.DB, olderThan time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	res := transaction.WithContext(ctx).
		Model(&types.PersonalizationRun{}).
		Where("status = ? AND created_at < ?", types.RunStatusPending, olderThan).
		Updates(map[string]interface{}{
			"status":     types.RunStatusFailed,
			"error":      "stale pending run swept",
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
