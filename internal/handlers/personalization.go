package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"github.com/selahapp/selah-backend/internal/types"
	"net/http"
)

type PersonalizationHandler struct {
	log    *logger.Logger
	perSvc services.PersonalizationService
}

func NewPersonalizationHandler(log *logger.Logger, perSvc services.PersonalizationService) *PersonalizationHandler {
	return &PersonalizationHandler{
		log:    log.With("handler", "PersonalizationHandler"),
		perSvc: perSvc,
	}
}

func (h *PersonalizationHandler) respondGenerationError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrGenerationInFlight) {
		RespondError(c, http.StatusConflict, "generation_in_flight", err)
		return
	}
	var parseErr *services.ModelParseError
	if errors.As(err, &parseErr) {
		h.log.Warn("Model returned unparseable output", "context", parseErr.Context, "fragment", parseErr.Fragment)
	}
	RespondError(c, http.StatusInternalServerError, "generation_failed", err)
}

// POST /api/verses/generate
func (h *PersonalizationHandler) GenerateBibleVerse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	verse, err := h.perSvc.GenerateBibleVerse(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "verse": verse})
}

// POST /api/devotionals/generate
func (h *PersonalizationHandler) GenerateDevotional(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	devotional, err := h.perSvc.GenerateDevotional(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "devotional": devotional})
}

// POST /api/videos/generate
func (h *PersonalizationHandler) GenerateVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.perSvc.GenerateVideos(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	if videos == nil {
		videos = []*types.Video{}
	}
	RespondOK(c, gin.H{"success": true, "videos": videos})
}

// POST /api/songs/generate
func (h *PersonalizationHandler) GenerateSongs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	songs, err := h.perSvc.GenerateSongs(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	if songs == nil {
		songs = []*types.Song{}
	}
	RespondOK(c, gin.H{"success": true, "songs": songs})
}

// POST /api/sermons/generate
func (h *PersonalizationHandler) GenerateSermons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sermons, err := h.perSvc.GenerateSermons(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	if sermons == nil {
		sermons = []*types.Sermon{}
	}
	RespondOK(c, gin.H{"success": true, "sermons": sermons})
}

// POST /api/resources/generate
func (h *PersonalizationHandler) GenerateResources(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resources, err := h.perSvc.GenerateResources(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	if resources == nil {
		resources = []*types.Resource{}
	}
	RespondOK(c, gin.H{"success": true, "resources": resources})
}

// POST /api/flourishing/generate
func (h *PersonalizationHandler) GenerateFlourishingScore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	score, err := h.perSvc.GenerateFlourishingScore(c.Request.Context(), userID)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true, "score": score})
}

// GET /api/personalization/:engine/latest-run
func (h *PersonalizationHandler) GetLatestRun(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	engineType := c.Param("engine")
	if !types.ValidEngineType(engineType) {
		RespondError(c, http.StatusBadRequest, "unknown_engine", errors.New("unknown engine type"))
		return
	}
	run, err := h.perSvc.GetLatestRun(c.Request.Context(), userID, engineType)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "run_lookup_failed", err)
		return
	}
	if run == nil {
		RespondError(c, http.StatusNotFound, "run_not_found", errors.New("no runs for engine"))
		return
	}
	RespondOK(c, gin.H{"run": run})
}
