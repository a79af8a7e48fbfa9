package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type MoodHandler struct {
	log     *logger.Logger
	moodSvc services.MoodService
}

func NewMoodHandler(log *logger.Logger, moodSvc services.MoodService) *MoodHandler {
	return &MoodHandler{
		log:     log.With("handler", "MoodHandler"),
		moodSvc: moodSvc,
	}
}

// POST /api/moods
func (h *MoodHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var body struct {
		Feeling   string `json:"feeling" binding:"required"`
		Intensity int    `json:"intensity"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	mood, err := h.moodSvc.Create(c.Request.Context(), userID, body.Feeling, body.Intensity, body.Note)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	RespondOK(c, gin.H{"mood": mood})
}

// GET /api/moods
func (h *MoodHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	moods, err := h.moodSvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"moods": moods})
}
