package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisclient "github.com/selahapp/selah-backend/internal/clients/redis"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/repos"
	"github.com/selahapp/selah-backend/internal/types"
)

// ErrGenerationInFlight is returned when another run for the same user and
// engine already holds the advisory lock.
var ErrGenerationInFlight = errors.New("a generation for this feature is already in flight")

const generationTemperature = 0.7

// Per-engine response ceilings; devotionals are by far the longest output.
var engineMaxTokens = map[string]int{
	types.EngineBibleVerse:  400,
	types.EngineDevotional:  2000,
	types.EngineVideo:       1000,
	types.EngineSong:        1000,
	types.EngineSermon:      1000,
	types.EngineResource:    1000,
	types.EngineFlourishing: 800,
}

type bibleVersePayload struct {
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	VerseStart  int    `json:"verse_start"`
	VerseEnd    *int   `json:"verse_end,omitempty"`
	Translation string `json:"translation"`
	Reason      string `json:"reason"`
}

type devotionalPayload struct {
	Title              string `json:"title"`
	Theme              string `json:"theme"`
	ScriptureReference string `json:"scripture_reference"`
	Content            string `json:"content"`
	PrayerFocus        string `json:"prayer_focus"`
}

type videoPayload struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	SearchQuery string `json:"search_query"`
	Reason      string `json:"reason"`
}

type songPayload struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Reason string `json:"reason"`
}

type sermonPayload struct {
	Title       string `json:"title"`
	Speaker     string `json:"speaker"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

type resourcePayload struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ResourceType string `json:"resource_type"`
	Description  string `json:"description"`
	Reason       string `json:"reason"`
}

type flourishingPayload struct {
	Faith         float64 `json:"faith"`
	Health        float64 `json:"health"`
	Relationships float64 `json:"relationships"`
	Purpose       float64 `json:"purpose"`
	Peace         float64 `json:"peace"`
	Gratitude     float64 `json:"gratitude"`
	Growth        float64 `json:"growth"`
	OverallScore  float64 `json:"overall_score"`
	AIInsight     string  `json:"ai_insight"`
}

type PersonalizationService interface {
	GenerateBibleVerse(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error)
	GenerateDevotional(ctx context.Context, userID uuid.UUID) (*types.Devotional, error)
	GenerateVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error)
	GenerateSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error)
	GenerateSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error)
	GenerateResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error)
	GenerateFlourishingScore(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error)
	GetLatestRun(ctx context.Context, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error)
}

type personalizationService struct {
	db        *gorm.DB
	log       *logger.Logger
	ai        AIClient
	scripture ScriptureClient
	activity  ActivityService
	locker    redisclient.RunLocker

	runRepo         repos.PersonalizationRunRepo
	verseRepo       repos.BibleVerseRepo
	devotionalRepo  repos.DevotionalRepo
	videoRepo       repos.VideoRepo
	songRepo        repos.SongRepo
	sermonRepo      repos.SermonRepo
	resourceRepo    repos.ResourceRepo
	flourishingRepo repos.FlourishingScoreRepo
}

// NewPersonalizationService wires the engine. locker may be nil, in which case
// concurrent runs for the same user+engine are allowed (last writer wins).
func NewPersonalizationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ai AIClient,
	scripture ScriptureClient,
	activity ActivityService,
	locker redisclient.RunLocker,
	runRepo repos.PersonalizationRunRepo,
	verseRepo repos.BibleVerseRepo,
	devotionalRepo repos.DevotionalRepo,
	videoRepo repos.VideoRepo,
	songRepo repos.SongRepo,
	sermonRepo repos.SermonRepo,
	resourceRepo repos.ResourceRepo,
	flourishingRepo repos.FlourishingScoreRepo,
) PersonalizationService {
	return &personalizationService{
		db:              db,
		log:             baseLog.With("service", "PersonalizationService"),
		ai:              ai,
		scripture:       scripture,
		activity:        activity,
		locker:          locker,
		runRepo:         runRepo,
		verseRepo:       verseRepo,
		devotionalRepo:  devotionalRepo,
		videoRepo:       videoRepo,
		songRepo:        songRepo,
		sermonRepo:      sermonRepo,
		resourceRepo:    resourceRepo,
		flourishingRepo: flourishingRepo,
	}
}

func (s *personalizationService) GetLatestRun(ctx context.Context, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error) {
	return s.runRepo.GetLatestByUserAndEngine(ctx, nil, userID, engineType)
}

// acquireLock takes the per-user+engine advisory lock. A lock backend error is
// logged and treated as no lock at all; generation must not depend on redis
// being up.
func (s *personalizationService) acquireLock(ctx context.Context, userID uuid.UUID, engineType string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	ok, err := s.locker.Acquire(ctx, userID, engineType)
	if err != nil {
		s.log.Warn("run lock unavailable, continuing unguarded", "engine_type", engineType, "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrGenerationInFlight
	}
	return func() {
		if rErr := s.locker.Release(ctx, userID, engineType); rErr != nil {
			s.log.Warn("run lock release failed", "engine_type", engineType, "error", rErr)
		}
	}, nil
}

func (s *personalizationService) createRun(ctx context.Context, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error) {
	input, _ := json.Marshal(map[string]any{"events_considered": summaryEventLimit})
	now := time.Now().UTC()
	runs := []*types.PersonalizationRun{{
		ID:         uuid.New(),
		UserID:     userID,
		EngineType: engineType,
		Status:     types.RunStatusPending,
		InputData:  datatypes.JSON(input),
		CreatedAt:  now,
		UpdatedAt:  now,
	}}
	created, err := s.runRepo.Create(ctx, nil, runs)
	if err != nil {
		return nil, fmt.Errorf("create personalization run: %w", err)
	}
	return created[0], nil
}

func (s *personalizationService) completeRun(ctx context.Context, tx *gorm.DB, runID uuid.UUID, output any) error {
	b, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal run output: %w", err)
	}
	return s.runRepo.UpdateFields(ctx, tx, runID, map[string]interface{}{
		"status":      types.RunStatusCompleted,
		"output_data": datatypes.JSON(b),
	})
}

// failRun is best-effort bookkeeping on the error path; the original error is
// what propagates to the caller.
func (s *personalizationService) failRun(ctx context.Context, runID uuid.UUID, cause error) {
	updates := map[string]interface{}{
		"status": types.RunStatusFailed,
	}
	if cause != nil {
		updates["error"] = cause.Error()
	}
	if err := s.runRepo.UpdateFields(ctx, nil, runID, updates); err != nil {
		s.log.Error("failed to mark run failed", "run_id", runID, "error", err)
	}
}

func (s *personalizationService) chat(ctx context.Context, system, user, engineType string) (string, error) {
	messages := []ChatMessage{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
	return s.ai.ChatCompletion(ctx, messages, generationTemperature, engineMaxTokens[engineType])
}

func versePlaceholder(book string, chapter, verseStart int) string {
	return fmt.Sprintf("Verse text is temporarily unavailable. Open your Bible to %s %d:%d.", book, chapter, verseStart)
}

func clampScore(v float64) int {
	i := int(math.Round(v))
	if i < 0 {
		return 0
	}
	if i > 100 {
		return 100
	}
	return i
}

func (s *personalizationService) GenerateBibleVerse(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineBibleVerse)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineBibleVerse)
	if err != nil {
		return nil, err
	}

	system, user := promptBibleVerse(summary)
	raw, err := s.chat(ctx, system, user, types.EngineBibleVerse)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[bibleVersePayload](raw, types.EngineBibleVerse)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	// The model's translation suggestion is discarded; we only serve one.
	content, lookupErr := s.scripture.Lookup(ctx, parsed.Book, parsed.Chapter, parsed.VerseStart, parsed.VerseEnd)
	if lookupErr != nil {
		s.log.Warn("scripture lookup failed, using placeholder", "error", lookupErr)
		content = versePlaceholder(parsed.Book, parsed.Chapter, parsed.VerseStart)
	}

	now := time.Now().UTC()
	verse := &types.BibleVerse{
		ID:                   uuid.New(),
		UserID:               userID,
		PersonalizationRunID: run.ID,
		Book:                 parsed.Book,
		Chapter:              parsed.Chapter,
		VerseStart:           parsed.VerseStart,
		VerseEnd:             parsed.VerseEnd,
		Translation:          scriptureTranslation,
		Content:              content,
		Reason:               parsed.Reason,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.verseRepo.Create(ctx, tx, []*types.BibleVerse{verse}); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return verse, nil
}

func (s *personalizationService) GenerateDevotional(ctx context.Context, userID uuid.UUID) (*types.Devotional, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineDevotional)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineDevotional)
	if err != nil {
		return nil, err
	}

	system, user := promptDevotional(summary)
	raw, err := s.chat(ctx, system, user, types.EngineDevotional)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[devotionalPayload](raw, types.EngineDevotional)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	now := time.Now().UTC()
	devotional := &types.Devotional{
		ID:                   uuid.New(),
		UserID:               userID,
		PersonalizationRunID: run.ID,
		Title:                parsed.Title,
		Theme:                parsed.Theme,
		ScriptureReference:   parsed.ScriptureReference,
		Content:              parsed.Content,
		PrayerFocus:          parsed.PrayerFocus,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.devotionalRepo.Create(ctx, tx, []*types.Devotional{devotional}); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return devotional, nil
}

func (s *personalizationService) GenerateVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineVideo)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineVideo)
	if err != nil {
		return nil, err
	}

	system, user := promptVideos(summary)
	raw, err := s.chat(ctx, system, user, types.EngineVideo)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[[]videoPayload](raw, types.EngineVideo)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	now := time.Now().UTC()
	videos := make([]*types.Video, 0, len(parsed))
	for i, p := range parsed {
		videos = append(videos, &types.Video{
			ID:                   uuid.New(),
			UserID:               userID,
			PersonalizationRunID: run.ID,
			Title:                p.Title,
			Channel:              p.Channel,
			Description:          p.Description,
			SearchQuery:          p.SearchQuery,
			Reason:               p.Reason,
			Position:             i,
			CreatedAt:            now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.videoRepo.Create(ctx, tx, videos); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return videos, nil
}

func (s *personalizationService) GenerateSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineSong)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineSong)
	if err != nil {
		return nil, err
	}

	system, user := promptSongs(summary)
	raw, err := s.chat(ctx, system, user, types.EngineSong)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[[]songPayload](raw, types.EngineSong)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	now := time.Now().UTC()
	songs := make([]*types.Song, 0, len(parsed))
	for i, p := range parsed {
		songs = append(songs, &types.Song{
			ID:                   uuid.New(),
			UserID:               userID,
			PersonalizationRunID: run.ID,
			Title:                p.Title,
			Artist:               p.Artist,
			Genre:                p.Genre,
			Reason:               p.Reason,
			Position:             i,
			CreatedAt:            now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.songRepo.Create(ctx, tx, songs); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return songs, nil
}

func (s *personalizationService) GenerateSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineSermon)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineSermon)
	if err != nil {
		return nil, err
	}

	system, user := promptSermons(summary)
	raw, err := s.chat(ctx, system, user, types.EngineSermon)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[[]sermonPayload](raw, types.EngineSermon)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	now := time.Now().UTC()
	sermons := make([]*types.Sermon, 0, len(parsed))
	for i, p := range parsed {
		sermons = append(sermons, &types.Sermon{
			ID:                   uuid.New(),
			UserID:               userID,
			PersonalizationRunID: run.ID,
			Title:                p.Title,
			Speaker:              p.Speaker,
			Topic:                p.Topic,
			Description:          p.Description,
			Reason:               p.Reason,
			Position:             i,
			CreatedAt:            now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.sermonRepo.Create(ctx, tx, sermons); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return sermons, nil
}

func (s *personalizationService) GenerateResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineResource)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineResource)
	if err != nil {
		return nil, err
	}

	system, user := promptResources(summary)
	raw, err := s.chat(ctx, system, user, types.EngineResource)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[[]resourcePayload](raw, types.EngineResource)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	now := time.Now().UTC()
	resources := make([]*types.Resource, 0, len(parsed))
	for i, p := range parsed {
		resources = append(resources, &types.Resource{
			ID:                   uuid.New(),
			UserID:               userID,
			PersonalizationRunID: run.ID,
			Title:                p.Title,
			Author:               p.Author,
			ResourceType:         p.ResourceType,
			Description:          p.Description,
			Reason:               p.Reason,
			Position:             i,
			CreatedAt:            now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.resourceRepo.Create(ctx, tx, resources); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return resources, nil
}

func (s *personalizationService) GenerateFlourishingScore(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error) {
	release, err := s.acquireLock(ctx, userID, types.EngineFlourishing)
	if err != nil {
		return nil, err
	}
	defer release()

	summary, err := s.activity.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	run, err := s.createRun(ctx, userID, types.EngineFlourishing)
	if err != nil {
		return nil, err
	}

	system, user := promptFlourishing(summary)
	raw, err := s.chat(ctx, system, user, types.EngineFlourishing)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	parsed, err := ParseModelJSON[flourishingPayload](raw, types.EngineFlourishing)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	// The insight's feature allow-list lives in the prompt only; whatever came
	// back is stored as-is.
	score := &types.FlourishingScore{
		ID:                   uuid.New(),
		UserID:               userID,
		PersonalizationRunID: run.ID,
		FaithScore:           clampScore(parsed.Faith),
		HealthScore:          clampScore(parsed.Health),
		RelationshipsScore:   clampScore(parsed.Relationships),
		PurposeScore:         clampScore(parsed.Purpose),
		PeaceScore:           clampScore(parsed.Peace),
		GratitudeScore:       clampScore(parsed.Gratitude),
		GrowthScore:          clampScore(parsed.Growth),
		OverallScore:         clampScore(parsed.OverallScore),
		AIInsight:            parsed.AIInsight,
		CreatedAt:            time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.flourishingRepo.Create(ctx, tx, []*types.FlourishingScore{score}); cErr != nil {
			return cErr
		}
		return s.completeRun(ctx, tx, run.ID, parsed)
	})
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}
	return score, nil
}
