package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/selahapp/selah-backend/internal/handlers"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/middleware"
	"github.com/selahapp/selah-backend/internal/services"
	"github.com/selahapp/selah-backend/internal/types"
)

const routerTestSecret = "router-test-secret"

type stubPersonalization struct {
	generateErr error
}

func (s *stubPersonalization) GenerateBibleVerse(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return &types.BibleVerse{ID: uuid.New(), UserID: userID, Book: "John", Chapter: 3, VerseStart: 16, Translation: "web"}, nil
}

func (s *stubPersonalization) GenerateDevotional(ctx context.Context, userID uuid.UUID) (*types.Devotional, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return &types.Devotional{ID: uuid.New(), UserID: userID, Title: "t"}, nil
}

func (s *stubPersonalization) GenerateVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error) {
	return nil, s.generateErr
}

func (s *stubPersonalization) GenerateSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error) {
	return nil, s.generateErr
}

func (s *stubPersonalization) GenerateSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error) {
	return nil, s.generateErr
}

func (s *stubPersonalization) GenerateResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error) {
	return nil, s.generateErr
}

func (s *stubPersonalization) GenerateFlourishingScore(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error) {
	return nil, s.generateErr
}

func (s *stubPersonalization) GetLatestRun(ctx context.Context, userID uuid.UUID, engineType string) (*types.PersonalizationRun, error) {
	return &types.PersonalizationRun{ID: uuid.New(), UserID: userID, EngineType: engineType, Status: types.RunStatusCompleted}, nil
}

type stubActivity struct{}

func (s *stubActivity) Log(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, eventData map[string]any) (*types.ActivityEvent, error) {
	return &types.ActivityEvent{ID: uuid.New(), UserID: userID, EventType: eventType}, nil
}

func (s *stubActivity) List(ctx context.Context, userID uuid.UUID) ([]*types.ActivityEvent, error) {
	return []*types.ActivityEvent{}, nil
}

func (s *stubActivity) Summarize(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}

type stubPrayers struct{}

func (s *stubPrayers) Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Prayer, error) {
	return &types.Prayer{ID: uuid.New(), UserID: userID, Title: title}, nil
}

func (s *stubPrayers) List(ctx context.Context, userID uuid.UUID) ([]*types.Prayer, error) {
	return []*types.Prayer{{ID: uuid.New(), UserID: userID, Title: "for peace"}}, nil
}

func (s *stubPrayers) MarkAnswered(ctx context.Context, userID, prayerID uuid.UUID) error {
	return nil
}

type stubMoods struct{}

func (s *stubMoods) Create(ctx context.Context, userID uuid.UUID, feeling string, intensity int, note string) (*types.Mood, error) {
	return &types.Mood{ID: uuid.New(), UserID: userID, Feeling: feeling, Intensity: intensity}, nil
}

func (s *stubMoods) List(ctx context.Context, userID uuid.UUID) ([]*types.Mood, error) {
	return []*types.Mood{}, nil
}

type stubNotes struct {
	mutErr error
}

func (s *stubNotes) Create(ctx context.Context, userID uuid.UUID, title, body string) (*types.Note, error) {
	return &types.Note{ID: uuid.New(), UserID: userID, Title: title, Body: body}, nil
}

func (s *stubNotes) List(ctx context.Context, userID uuid.UUID) ([]*types.Note, error) {
	return []*types.Note{}, nil
}

func (s *stubNotes) Update(ctx context.Context, userID, noteID uuid.UUID, title, body string) error {
	return s.mutErr
}

func (s *stubNotes) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	return s.mutErr
}

type stubVerses struct{}

func (s *stubVerses) GetLatest(ctx context.Context, userID uuid.UUID) (*types.BibleVerse, error) {
	return nil, nil
}

func (s *stubVerses) List(ctx context.Context, userID uuid.UUID) ([]*types.BibleVerse, error) {
	return []*types.BibleVerse{}, nil
}

func (s *stubVerses) MarkRead(ctx context.Context, userID, verseID uuid.UUID) error {
	return nil
}

func (s *stubVerses) SaveNotes(ctx context.Context, userID, verseID uuid.UUID, notes string) error {
	return nil
}

type stubDevotionals struct{}

func (s *stubDevotionals) GetLatest(ctx context.Context, userID uuid.UUID) (*types.Devotional, error) {
	return nil, nil
}

func (s *stubDevotionals) List(ctx context.Context, userID uuid.UUID) ([]*types.Devotional, error) {
	return []*types.Devotional{}, nil
}

func (s *stubDevotionals) MarkRead(ctx context.Context, userID, devotionalID uuid.UUID) error {
	return nil
}

type stubRecommendations struct{}

func (s *stubRecommendations) ListVideos(ctx context.Context, userID uuid.UUID) ([]*types.Video, error) {
	return []*types.Video{}, nil
}

func (s *stubRecommendations) ListSongs(ctx context.Context, userID uuid.UUID) ([]*types.Song, error) {
	return []*types.Song{}, nil
}

func (s *stubRecommendations) ListSermons(ctx context.Context, userID uuid.UUID) ([]*types.Sermon, error) {
	return []*types.Sermon{}, nil
}

func (s *stubRecommendations) ListResources(ctx context.Context, userID uuid.UUID) ([]*types.Resource, error) {
	return []*types.Resource{}, nil
}

type stubFlourishing struct{}

func (s *stubFlourishing) GetLatest(ctx context.Context, userID uuid.UUID) (*types.FlourishingScore, error) {
	return nil, nil
}

func (s *stubFlourishing) History(ctx context.Context, userID uuid.UUID) ([]*types.FlourishingScore, error) {
	return []*types.FlourishingScore{}, nil
}

func newTestRouter(t *testing.T, personalization services.PersonalizationService) *gin.Engine {
	t.Helper()
	return newTestRouterWithNotes(t, personalization, &stubNotes{})
}

func newTestRouterWithNotes(t *testing.T, personalization services.PersonalizationService, notes services.NoteService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	authMiddleware := middleware.NewAuthMiddleware(log, services.NewAuthService(log, routerTestSecret))
	return NewRouter(RouterConfig{
		AuthMiddleware:         authMiddleware,
		ActivityHandler:        handlers.NewActivityHandler(log, &stubActivity{}),
		PrayerHandler:          handlers.NewPrayerHandler(log, &stubPrayers{}),
		MoodHandler:            handlers.NewMoodHandler(log, &stubMoods{}),
		NoteHandler:            handlers.NewNoteHandler(log, notes),
		VerseHandler:           handlers.NewVerseHandler(log, &stubVerses{}),
		DevotionalHandler:      handlers.NewDevotionalHandler(log, &stubDevotionals{}),
		RecommendationHandler:  handlers.NewRecommendationHandler(log, &stubRecommendations{}),
		FlourishingHandler:     handlers.NewFlourishingHandler(log, &stubFlourishing{}),
		PersonalizationHandler: handlers.NewPersonalizationHandler(log, personalization),
	})
}

func bearerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(routerTestSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestRouter_HealthcheckIsPublic(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthcheck", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_APIRejectsMissingToken(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/prayers", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRouter_APIAcceptsBearerToken(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{})
	req := httptest.NewRequest("GET", "/api/prayers", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Prayers []types.Prayer `json:"prayers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Prayers) != 1 {
		t.Fatalf("expected 1 prayer, got %d", len(body.Prayers))
	}
}

func TestRouter_GenerateConflictMapsTo409(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{generateErr: services.ErrGenerationInFlight})
	req := httptest.NewRequest("POST", "/api/devotionals/generate", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_GenerateSuccessReturnsArtifact(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{})
	req := httptest.NewRequest("POST", "/api/verses/generate", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool             `json:"success"`
		Verse   types.BibleVerse `json:"verse"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Verse.Translation != "web" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRouter_NoteMutationNotFoundIs404(t *testing.T) {
	router := newTestRouterWithNotes(t, &stubPersonalization{}, &stubNotes{mutErr: gorm.ErrRecordNotFound})
	req := httptest.NewRequest("DELETE", "/api/notes/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_UnknownEngineIs400(t *testing.T) {
	router := newTestRouter(t, &stubPersonalization{})
	req := httptest.NewRequest("GET", "/api/personalization/horoscope/latest-run", nil)
	req.Header.Set("Authorization", bearerToken(t, uuid.New()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
