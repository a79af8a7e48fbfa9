package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type FlourishingHandler struct {
	log     *logger.Logger
	flouSvc services.FlourishingService
}

func NewFlourishingHandler(log *logger.Logger, flouSvc services.FlourishingService) *FlourishingHandler {
	return &FlourishingHandler{
		log:     log.With("handler", "FlourishingHandler"),
		flouSvc: flouSvc,
	}
}

// GET /api/flourishing/latest
func (h *FlourishingHandler) GetLatest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	score, err := h.flouSvc.GetLatest(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	if score == nil {
		RespondError(c, http.StatusNotFound, "score_not_found", errNoContent("flourishing score"))
		return
	}
	RespondOK(c, gin.H{"score": score})
}

// GET /api/flourishing/history
func (h *FlourishingHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	scores, err := h.flouSvc.History(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"scores": scores})
}
