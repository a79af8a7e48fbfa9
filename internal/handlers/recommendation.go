package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /api/videos
func (h *RecommendationHandler) ListVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.recSvc.ListVideos(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"videos": videos})
}

// GET /api/songs
func (h *RecommendationHandler) ListSongs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	songs, err := h.recSvc.ListSongs(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"songs": songs})
}

// GET /api/sermons
func (h *RecommendationHandler) ListSermons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sermons, err := h.recSvc.ListSermons(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"sermons": sermons})
}

// GET /api/resources
func (h *RecommendationHandler) ListResources(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resources, err := h.recSvc.ListResources(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"resources": resources})
}
