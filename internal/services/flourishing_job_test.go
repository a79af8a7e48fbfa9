package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/types"
)

type stubPersonalization struct {
	PersonalizationService
	calls []uuid.UUID
	errBy map[uuid.UUID]error
}

func (s *stubPersonalization) GenerateFlourishingScore(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error) {
	s.calls = append(s.calls, userID)
	if err, ok := s.errBy[userID]; ok {
		return nil, err
	}
	return &types.FlourishingScore{ID: uuid.New(), UserID: userID}, nil
}

func TestSweep_FailsOnlyStalePendingRuns(t *testing.T) {
	runRepo := newFakeRunRepo()
	stale := &types.PersonalizationRun{
		ID:         uuid.New(),
		EngineType: types.EngineFlourishing,
		Status:     types.RunStatusPending,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	fresh := &types.PersonalizationRun{
		ID:         uuid.New(),
		EngineType: types.EngineDevotional,
		Status:     types.RunStatusPending,
		CreatedAt:  time.Now(),
	}
	done := &types.PersonalizationRun{
		ID:         uuid.New(),
		EngineType: types.EngineVideo,
		Status:     types.RunStatusCompleted,
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	runRepo.runs = append(runRepo.runs, stale, fresh, done)

	job := &flourishingJob{
		db:       newTestDB(t),
		log:      logger.NewNop(),
		userRepo: &fakeUserRepo{},
		runRepo:  runRepo,
	}
	job.sweep(context.Background())

	if stale.Status != types.RunStatusFailed {
		t.Fatalf("stale pending run should be failed, got %q", stale.Status)
	}
	if fresh.Status != types.RunStatusPending {
		t.Fatalf("fresh pending run must be left alone, got %q", fresh.Status)
	}
	if done.Status != types.RunStatusCompleted {
		t.Fatalf("completed run must be left alone, got %q", done.Status)
	}
}

func TestRunAll_ContinuesPastFailures(t *testing.T) {
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	stub := &stubPersonalization{errBy: map[uuid.UUID]error{
		users[0]: ErrGenerationInFlight,
		users[1]: fmt.Errorf("model timeout"),
	}}
	job := &flourishingJob{
		db:              newTestDB(t),
		log:             logger.NewNop(),
		userRepo:        &fakeUserRepo{ids: users},
		runRepo:         newFakeRunRepo(),
		personalization: stub,
	}
	job.runAll(context.Background())

	if len(stub.calls) != 3 {
		t.Fatalf("all users should be attempted, got %d calls", len(stub.calls))
	}
}

func TestRunAll_StopsWhenContextCancelled(t *testing.T) {
	users := []uuid.UUID{uuid.New(), uuid.New()}
	stub := &stubPersonalization{}
	job := &flourishingJob{
		db:              newTestDB(t),
		log:             logger.NewNop(),
		userRepo:        &fakeUserRepo{ids: users},
		runRepo:         newFakeRunRepo(),
		personalization: stub,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job.runAll(ctx)

	if len(stub.calls) != 0 {
		t.Fatalf("cancelled context should stop the loop, got %d calls", len(stub.calls))
	}
}
