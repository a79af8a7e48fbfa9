package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

func TestPrayerCreate_LogsActivityEvent(t *testing.T) {
	db := newTestDB(t)
	activityRepo := &fakeActivityEventRepo{}
	activity := NewActivityService(db, logger.NewNop(), activityRepo)
	repo := &fakePrayerRepo{}
	svc := NewPrayerService(db, logger.NewNop(), repo, activity)

	prayer, err := svc.Create(context.Background(), uuid.New(), "  For healing  ", "body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prayer.Title != "For healing" {
		t.Fatalf("title not trimmed: %q", prayer.Title)
	}
	if len(activityRepo.created) != 1 || activityRepo.created[0].EventType != types.EventPrayer {
		t.Fatalf("expected one prayer activity event, got %+v", activityRepo.created)
	}
}

func TestPrayerCreate_RequiresTitle(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	svc := NewPrayerService(db, logger.NewNop(), &fakePrayerRepo{}, activity)

	if _, err := svc.Create(context.Background(), uuid.New(), "   ", ""); err == nil {
		t.Fatalf("expected error for blank title")
	}
}

func TestPrayerCreate_FailedInsertLogsNothing(t *testing.T) {
	db := newTestDB(t)
	activityRepo := &fakeActivityEventRepo{}
	activity := NewActivityService(db, logger.NewNop(), activityRepo)
	repo := &fakePrayerRepo{createErr: fmt.Errorf("insert failed")}
	svc := NewPrayerService(db, logger.NewNop(), repo, activity)

	if _, err := svc.Create(context.Background(), uuid.New(), "title", ""); err == nil {
		t.Fatalf("expected error")
	}
	if len(activityRepo.created) != 0 {
		t.Fatalf("activity must not be logged when the insert fails")
	}
}

func TestPrayerMarkAnswered_SetsFields(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakePrayerRepo{}
	svc := NewPrayerService(db, logger.NewNop(), repo, activity)

	userID := uuid.New()
	prayerID := uuid.New()
	repo.created = append(repo.created, &types.Prayer{ID: prayerID, UserID: userID, Title: "for rest"})
	if err := svc.MarkAnswered(context.Background(), userID, prayerID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updates := repo.updates[prayerID]
	if updates == nil || updates["answered"] != true {
		t.Fatalf("answered not set, updates=%+v", updates)
	}
	if _, ok := updates["answered_at"]; !ok {
		t.Fatalf("answered_at not set")
	}
}

func TestPrayerMarkAnswered_RejectsOtherUsersPrayer(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakePrayerRepo{}
	svc := NewPrayerService(db, logger.NewNop(), repo, activity)

	prayerID := uuid.New()
	repo.created = append(repo.created, &types.Prayer{ID: prayerID, UserID: uuid.New(), Title: "private"})
	err := svc.MarkAnswered(context.Background(), uuid.New(), prayerID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("prayer updated for a non-owner: %+v", repo.updates)
	}
}

func TestMoodCreate_ClampsIntensity(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakeMoodRepo{}
	svc := NewMoodService(db, logger.NewNop(), repo, activity)

	low, err := svc.Create(context.Background(), uuid.New(), "Anxious", 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low.Intensity != 1 {
		t.Fatalf("expected clamp to 1, got %d", low.Intensity)
	}
	if low.Feeling != "anxious" {
		t.Fatalf("feeling not normalized: %q", low.Feeling)
	}

	high, err := svc.Create(context.Background(), uuid.New(), "joyful", 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high.Intensity != 5 {
		t.Fatalf("expected clamp to 5, got %d", high.Intensity)
	}
}

func TestNoteCreate_LogsActivityEvent(t *testing.T) {
	db := newTestDB(t)
	activityRepo := &fakeActivityEventRepo{}
	activity := NewActivityService(db, logger.NewNop(), activityRepo)
	repo := &fakeNoteRepo{}
	svc := NewNoteService(db, logger.NewNop(), repo, activity)

	if _, err := svc.Create(context.Background(), uuid.New(), "title", "the body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 note, got %d", len(repo.created))
	}
	if len(activityRepo.created) != 1 || activityRepo.created[0].EventType != types.EventNoteCreated {
		t.Fatalf("expected note_created event, got %+v", activityRepo.created)
	}
}

func TestNoteUpdate_RejectsOtherUsersNote(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakeNoteRepo{}
	svc := NewNoteService(db, logger.NewNop(), repo, activity)

	noteID := uuid.New()
	repo.created = append(repo.created, &types.Note{ID: noteID, UserID: uuid.New(), Title: "private"})
	err := svc.Update(context.Background(), uuid.New(), noteID, "hijacked", "new body")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestNoteDelete_RejectsOtherUsersNote(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakeNoteRepo{}
	svc := NewNoteService(db, logger.NewNop(), repo, activity)

	noteID := uuid.New()
	repo.created = append(repo.created, &types.Note{ID: noteID, UserID: uuid.New(), Title: "private"})
	err := svc.Delete(context.Background(), uuid.New(), noteID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("note deleted for a non-owner")
	}
}

func TestVerseSaveNotes_RejectsOtherUsersVerse(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db, logger.NewNop(), &fakeActivityEventRepo{})
	repo := &fakeVerseRepo{}
	svc := NewVerseService(db, logger.NewNop(), repo, activity)

	verseID := uuid.New()
	repo.created = append(repo.created, &types.BibleVerse{ID: verseID, UserID: uuid.New()})
	err := svc.SaveNotes(context.Background(), uuid.New(), verseID, "not mine")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDevotionalMarkRead_RejectsOtherUsersDevotional(t *testing.T) {
	db := newTestDB(t)
	activityRepo := &fakeActivityEventRepo{}
	activity := NewActivityService(db, logger.NewNop(), activityRepo)
	repo := &fakeDevotionalRepo{}
	svc := NewDevotionalService(db, logger.NewNop(), repo, activity)

	devotionalID := uuid.New()
	repo.created = append(repo.created, &types.Devotional{ID: devotionalID, UserID: uuid.New()})
	err := svc.MarkRead(context.Background(), uuid.New(), devotionalID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(activityRepo.created) != 0 {
		t.Fatalf("devotional read logged for a non-owner")
	}
}
