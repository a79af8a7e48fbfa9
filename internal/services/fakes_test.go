package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/selahapp/selah-backend/internal/types"
)

// newTestDB opens an in-memory sqlite handle. Tests that use fake repos only
// need it as a transaction host; nothing is migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

type fakeAIClient struct {
	response string
	err      error

	calls       int
	lastMaxTok  int
	lastTemp    float64
	lastMessage []ChatMessage
}

func (f *fakeAIClient) ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	f.calls++
	f.lastMessage = messages
	f.lastTemp = temperature
	f.lastMaxTok = maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeScriptureClient struct {
	text string
	err  error
}

func (f *fakeScriptureClient) Lookup(ctx context.Context, book string, chapter, verseStart int, verseEnd *int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeRunLocker struct {
	acquireOK  bool
	acquireErr error
	released   int
}

func (f *fakeRunLocker) Acquire(ctx context.Context, userID uuid.UUID, engineType string) (bool, error) {
	return f.acquireOK, f.acquireErr
}

func (f *fakeRunLocker) Release(ctx context.Context, userID uuid.UUID, engineType string) error {
	f.released++
	return nil
}

func (f *fakeRunLocker) Close() error { return nil }

type fakeActivityEventRepo struct {
	events  []*types.ActivityEvent
	created []*types.ActivityEvent
	err     error
}

func (f *fakeActivityEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.ActivityEvent) ([]*types.ActivityEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, events...)
	return events, nil
}

func (f *fakeActivityEventRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ActivityEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.events) > limit {
		return f.events[:limit], nil
	}
	return f.events, nil
}

func (f *fakeActivityEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ActivityEvent, error) {
	return f.events, f.err
}

type fakeRunRepo struct {
	runs      []*types.PersonalizationRun
	updates   map[uuid.UUID][]map[string]interface{}
	createErr error
	updateErr error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{updates: map[uuid.UUID][]map[string]interface{}{}}
}

func (f *fakeRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.PersonalizationRun) ([]*types.PersonalizationRun, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.runs = append(f.runs, runs...)
	return runs, nil
}

func (f *fakeRunRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PersonalizationRun, error) {
	var out []*types.PersonalizationRun
	for _, r := range f.runs {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeRunRepo) GetLatestByUserAndEngine(ctx context.Context, tx *gorm.DB, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error) {
	for i := len(f.runs) - 1; i >= 0; i-- {
		if f.runs[i].UserID == userID && f.runs[i].EngineType == engineType {
			return f.runs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[id] = append(f.updates[id], updates)
	for _, r := range f.runs {
		if r.ID == id {
			if status, ok := updates["status"].(string); ok {
				r.Status = status
			}
			if msg, ok := updates["error"].(string); ok {
				r.Error = msg
			}
		}
	}
	return nil
}

func (f *fakeRunRepo) MarkStalePendingFailed(ctx context.Context, tx *gorm.DB, olderThan time.Time) (int64, error) {
	var n int64
	for _, r := range f.runs {
		if r.Status == types.RunStatusPending && r.CreatedAt.Before(olderThan) {
			r.Status = types.RunStatusFailed
			n++
		}
	}
	return n, nil
}

// runByID fails the test when the ledger has no such run.
func (f *fakeRunRepo) runByID(t *testing.T, id uuid.UUID) *types.PersonalizationRun {
	t.Helper()
	for _, r := range f.runs {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("run %s not found", id)
	return nil
}

type fakeVerseRepo struct {
	created   []*types.BibleVerse
	createErr error
}

func (f *fakeVerseRepo) Create(ctx context.Context, tx *gorm.DB, verses []*types.BibleVerse) ([]*types.BibleVerse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, verses...)
	return verses, nil
}

func (f *fakeVerseRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.BibleVerse, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

func (f *fakeVerseRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.BibleVerse, error) {
	return f.created, nil
}

func (f *fakeVerseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	for _, v := range f.created {
		if v.ID == id && v.UserID == userID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeDevotionalRepo struct {
	created   []*types.Devotional
	createErr error
}

func (f *fakeDevotionalRepo) Create(ctx context.Context, tx *gorm.DB, devotionals []*types.Devotional) ([]*types.Devotional, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, devotionals...)
	return devotionals, nil
}

func (f *fakeDevotionalRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Devotional, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

func (f *fakeDevotionalRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Devotional, error) {
	return f.created, nil
}

func (f *fakeDevotionalRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	for _, d := range f.created {
		if d.ID == id && d.UserID == userID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeVideoRepo struct {
	created []*types.Video
}

func (f *fakeVideoRepo) Create(ctx context.Context, tx *gorm.DB, videos []*types.Video) ([]*types.Video, error) {
	f.created = append(f.created, videos...)
	return videos, nil
}

func (f *fakeVideoRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Video, error) {
	var out []*types.Video
	for _, v := range f.created {
		if v.PersonalizationRunID == runID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Video, error) {
	return f.created, nil
}

type fakeSongRepo struct {
	created []*types.Song
}

func (f *fakeSongRepo) Create(ctx context.Context, tx *gorm.DB, songs []*types.Song) ([]*types.Song, error) {
	f.created = append(f.created, songs...)
	return songs, nil
}

func (f *fakeSongRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Song, error) {
	return f.created, nil
}

func (f *fakeSongRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Song, error) {
	return f.created, nil
}

type fakeSermonRepo struct {
	created []*types.Sermon
}

func (f *fakeSermonRepo) Create(ctx context.Context, tx *gorm.DB, sermons []*types.Sermon) ([]*types.Sermon, error) {
	f.created = append(f.created, sermons...)
	return sermons, nil
}

func (f *fakeSermonRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Sermon, error) {
	return f.created, nil
}

func (f *fakeSermonRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Sermon, error) {
	return f.created, nil
}

type fakeResourceRepo struct {
	created []*types.Resource
}

func (f *fakeResourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	f.created = append(f.created, resources...)
	return resources, nil
}

func (f *fakeResourceRepo) GetByRunID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) ([]*types.Resource, error) {
	return f.created, nil
}

func (f *fakeResourceRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Resource, error) {
	return f.created, nil
}

type fakeFlourishingRepo struct {
	created []*types.FlourishingScore
}

func (f *fakeFlourishingRepo) Create(ctx context.Context, tx *gorm.DB, scores []*types.FlourishingScore) ([]*types.FlourishingScore, error) {
	f.created = append(f.created, scores...)
	return scores, nil
}

func (f *fakeFlourishingRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.FlourishingScore, error) {
	if len(f.created) == 0 {
		return nil, nil
	}
	return f.created[len(f.created)-1], nil
}

func (f *fakeFlourishingRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FlourishingScore, error) {
	return f.created, nil
}

type fakePrayerRepo struct {
	created   []*types.Prayer
	updates   map[uuid.UUID]map[string]interface{}
	createErr error
}

func (f *fakePrayerRepo) Create(ctx context.Context, tx *gorm.DB, prayers []*types.Prayer) ([]*types.Prayer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, prayers...)
	return prayers, nil
}

func (f *fakePrayerRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Prayer, error) {
	return f.created, nil
}

func (f *fakePrayerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	for _, p := range f.created {
		if p.ID == id && p.UserID == userID {
			if f.updates == nil {
				f.updates = map[uuid.UUID]map[string]interface{}{}
			}
			f.updates[id] = updates
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeMoodRepo struct {
	created []*types.Mood
}

func (f *fakeMoodRepo) Create(ctx context.Context, tx *gorm.DB, moods []*types.Mood) ([]*types.Mood, error) {
	f.created = append(f.created, moods...)
	return moods, nil
}

func (f *fakeMoodRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Mood, error) {
	return f.created, nil
}

type fakeNoteRepo struct {
	created []*types.Note
	deleted []uuid.UUID
}

func (f *fakeNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	f.created = append(f.created, notes...)
	return notes, nil
}

func (f *fakeNoteRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Note, error) {
	return f.created, nil
}

func (f *fakeNoteRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, updates map[string]interface{}) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNoteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error {
	matched := false
	for _, n := range f.created {
		for _, id := range ids {
			if n.ID == id && n.UserID == userID {
				matched = true
				f.deleted = append(f.deleted, id)
			}
		}
	}
	if !matched {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type fakeUserRepo struct {
	ids []uuid.UUID
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeUserRepo) ListAllIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	return f.ids, nil
}
