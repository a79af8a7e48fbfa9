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

// VerseService is the read side of the bible-verse feature: the UI always
// shows the most recently generated verse.
type VerseService interface {
	GetLatest(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.BibleVerse, error)
	MarkRead(ctx context.Context, userID, verseID uuid.UUID) error
	SaveNotes(ctx context.Context, userID, verseID uuid.UUID, notes string) error
}

type verseService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.BibleVerseRepo
	activity ActivityService
}

func NewVerseService(db *gorm.DB, baseLog *logger.Logger, repo repos.BibleVerseRepo, activity ActivityService) VerseService {
	return &verseService{
		db:       db,
		log:      baseLog.With("service", "VerseService"),
		repo:     repo,
		activity: activity,
	}
}

func (s *verseService) GetLatest(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error) {
	return s.repo.GetLatestByUserID(ctx, nil, userID)
}

func (s *verseService) List(ctx context.Context, userID uuid.UUID) ([]*types.BibleVerse, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}

func (s *verseService) MarkRead(ctx context.Context, userID, verseID uuid.UUID) error {
	if userID == uuid.Nil || verseID == uuid.Nil {
		return fmt.Errorf("user id and verse id required")
	}
	_, err := s.activity.Log(ctx, nil, userID, types.EventBibleRead, map[string]any{
		"verse_id": verseID.String(),
		"read_at":  time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (s *verseService) SaveNotes(ctx context.Context, userID, verseID uuid.UUID, notes string) error {
	if userID == uuid.Nil || verseID == uuid.Nil {
		return fmt.Errorf("user id and verse id required")
	}
	return s.repo.UpdateFields(ctx, nil, userID, verseID, map[string]interface{}{
		"user_notes": notes,
	})
}
