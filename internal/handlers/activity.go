package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type ActivityHandler struct {
	log         *logger.Logger
	activitySvc services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activitySvc services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		log:         log.With("handler", "ActivityHandler"),
		activitySvc: activitySvc,
	}
}

// POST /api/activities
func (h *ActivityHandler) LogEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var body struct {
		EventType string         `json:"event_type" binding:"required"`
		EventData map[string]any `json:"event_data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	event, err := h.activitySvc.Log(c.Request.Context(), nil, userID, body.EventType, body.EventData)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "log_failed", err)
		return
	}
	RespondOK(c, gin.H{"event": event})
}

// GET /api/activities
func (h *ActivityHandler) ListEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := h.activitySvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
