package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type VerseHandler struct {
	log      *logger.Logger
	verseSvc services.VerseService
}

func NewVerseHandler(log *logger.Logger, verseSvc services.VerseService) *VerseHandler {
	return &VerseHandler{
		log:      log.With("handler", "VerseHandler"),
		verseSvc: verseSvc,
	}
}

// GET /api/verses/latest
func (h *VerseHandler) GetLatest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	verse, err := h.verseSvc.GetLatest(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
		return
	}
	if verse == nil {
		RespondError(c, http.StatusNotFound, "verse_not_found", errNoContent("verse"))
		return
	}
	RespondOK(c, gin.H{"verse": verse})
}

// GET /api/verses
func (h *VerseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	verses, err := h.verseSvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"verses": verses})
}

// POST /api/verses/:id/read
func (h *VerseHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	verseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.verseSvc.MarkRead(c.Request.Context(), userID, verseID); err != nil {
		RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// PUT /api/verses/:id/notes
func (h *VerseHandler) SaveNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	verseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.verseSvc.SaveNotes(c.Request.Context(), userID, verseID, body.Notes); err != nil {
		RespondMutationError(c, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
