package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type PrayerHandler struct {
	log       *logger.Logger
	prayerSvc services.PrayerService
}

func NewPrayerHandler(log *logger.Logger, prayerSvc services.PrayerService) *PrayerHandler {
	return &PrayerHandler{
		log:       log.With("handler", "PrayerHandler"),
		prayerSvc: prayerSvc,
	}
}

// POST /api/prayers
func (h *PrayerHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	prayer, err := h.prayerSvc.Create(c.Request.Context(), userID, body.Title, body.Body)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	RespondOK(c, gin.H{"prayer": prayer})
}

// GET /api/prayers
func (h *PrayerHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prayers, err := h.prayerSvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"prayers": prayers})
}

// POST /api/prayers/:id/answered
func (h *PrayerHandler) MarkAnswered(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	prayerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.prayerSvc.MarkAnswered(c.Request.Context(), userID, prayerID); err != nil {
		RespondMutationError(c, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
