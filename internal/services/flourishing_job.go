package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
)

// stalePendingAfter is how long a run may sit pending before the sweeper
// treats it as a casualty of a crash and fails it.
const stalePendingAfter = 10 * time.Minute

// FlourishingJob periodically refreshes every user's flourishing score, one
// user at a time, and sweeps stale pending runs. One failure never stops the
// loop.
type FlourishingJob interface {
	Start(ctx context.Context)
}

type flourishingJob struct {
	db              *gorm.DB
	log             *logger.Logger
	userRepo        repos.UserRepo
	runRepo         repos.PersonalizationRunRepo
	personalization PersonalizationService
	interval        time.Duration
}

func NewFlourishingJob(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	runRepo repos.PersonalizationRunRepo,
	personalization PersonalizationService,
	interval time.Duration,
) FlourishingJob {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &flourishingJob{
		db:              db,
		log:             baseLog.With("service", "FlourishingJob"),
		userRepo:        userRepo,
		runRepo:         runRepo,
		personalization: personalization,
		interval:        interval,
	}
}

func (j *flourishingJob) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		// Sweep right away so a restart clears runs orphaned by the crash.
		j.sweep(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep(ctx)
				j.runAll(ctx)
			}
		}
	}()
}

func (j *flourishingJob) sweep(ctx context.Context) {
	n, err := j.runRepo.MarkStalePendingFailed(ctx, nil, time.Now().Add(-stalePendingAfter))
	if err != nil {
		j.log.Warn("stale pending sweep failed", "error", err)
		return
	}
	if n > 0 {
		j.log.Info("swept stale pending runs", "count", n)
	}
}

func (j *flourishingJob) runAll(ctx context.Context) {
	ids, err := j.userRepo.ListAllIDs(ctx, nil)
	if err != nil {
		j.log.Warn("could not list users for flourishing refresh", "error", err)
		return
	}
	j.log.Info("starting flourishing refresh", "users", len(ids))

	for _, userID := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := j.personalization.GenerateFlourishingScore(ctx, userID); err != nil {
			if errors.Is(err, ErrGenerationInFlight) {
				continue
			}
			j.log.Warn("flourishing refresh failed for user", "user_id", userID, "error", err)
		}
	}
}
