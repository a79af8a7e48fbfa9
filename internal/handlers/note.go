package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/services"
	"net/http"
)

type NoteHandler struct {
	log     *logger.Logger
	noteSvc services.NoteService
}

func NewNoteHandler(log *logger.Logger, noteSvc services.NoteService) *NoteHandler {
	return &NoteHandler{
		log:     log.With("handler", "NoteHandler"),
		noteSvc: noteSvc,
	}
}

// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := h.noteSvc.Create(c.Request.Context(), userID, body.Title, body.Body)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

// GET /api/notes
func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notes, err := h.noteSvc.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.noteSvc.Update(c.Request.Context(), userID, noteID, body.Title, body.Body); err != nil {
		RespondMutationError(c, "update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.noteSvc.Delete(c.Request.Context(), userID, noteID); err != nil {
		RespondMutationError(c, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
