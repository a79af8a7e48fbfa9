package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

type NoteService interface {
	Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Note, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Note, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, title, body string) error
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.NoteRepo
	activity ActivityService
}

func NewNoteService(db *gorm.DB, baseLog *logger.Logger, repo repos.NoteRepo, activity ActivityService) NoteService {
	return &noteService{
		db:       db,
		log:      baseLog.With("service", "NoteService"),
		repo:     repo,
		activity: activity,
	}
}

func (s *noteService) Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("note needs a title or a body")
	}

	now := time.Now().UTC()
	note := &types.Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.repo.Create(ctx, tx, []*types.Note{note}); cErr != nil {
			return cErr
		}
		_, aErr := s.activity.Log(ctx, tx, userID, types.EventNoteCreated, map[string]any{"title": note.Title})
		return aErr
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, userID uuid.UUID) ([]*types.Note, error) {
	return s.repo.GetByUserID(ctx, nil, userID)
}

func (s *noteService) Update(ctx context.Context, userID, noteID uuid.UUID, title, body string) error {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return fmt.Errorf("user id and note id required")
	}
	return s.repo.UpdateFields(ctx, nil, userID, noteID, map[string]interface{}{
		"title": strings.TrimSpace(title),
		"body":  body,
	})
}

func (s *noteService) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	if userID == uuid.Nil || noteID == uuid.Nil {
		return fmt.Errorf("user id and note id required")
	}
	return s.repo.SoftDeleteByIDs(ctx, nil, userID, []uuid.UUID{noteID})
}
