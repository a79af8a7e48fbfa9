package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type DevotionalHandler struct {
	log   *logger.Logger
	dvSvc services.DevotionalService
}

func NewDevotionalHandler(log *logger.Logger, dvSvc services.DevotionalService) *DevotionalHandler {
	return &DevotionalHandler{
		log:   log.With("handler", "DevotionalHandler"),
		dvSvc: dvSvc,
	}
}

// GET /api/devotionals/latest
func (h *DevotionalHandler) GetLatest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	devotional, err := h.dvSvc.GetLatest(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	if devotional == nil {
		RespondError(c, http.StatusNotFound, "devotional_not_found", errNoContent("devotional"))
		return
	}
	RespondOK(c, gin.H{"devotional": devotional})
}

// GET /api/devotionals
func (h *DevotionalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	devotionals, err := h.dvSvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"devotionals": devotionals})
}

// POST /api/devotionals/:id/read
func (h *DevotionalHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	devotionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.dvSvc.MarkRead(c.Request.Context(), userID, devotionalID); err != nil {
		RespondMutationError(c, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
