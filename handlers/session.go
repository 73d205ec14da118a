package handlers

import (
	"net/http"

	"studybuddy/models"
	"studybuddy/services/session"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	SessionService session.SessionService
}

func NewSessionHandler(ss session.SessionService) *SessionHandler {
	return &SessionHandler{SessionService: ss}
}

// CreateSessionHandler handles POST /api/sessions.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in session.CreateSessionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.SessionService.CreateSession(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, sess)
}

// ListOpenHandler handles GET /api/sessions.
func (h *SessionHandler) ListOpenHandler(c *gin.Context) {
	sessions, err := h.SessionService.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sessions)
}

// ListMineHandler handles GET /api/sessions/mine.
func (h *SessionHandler) ListMineHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	sessions, err := h.SessionService.ListMine(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sessions)
}

// GetSessionHandler handles GET /api/sessions/:id.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	sess, err := h.SessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sess)
}

// JoinSessionHandler handles POST /api/sessions/:id/join.
func (h *SessionHandler) JoinSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	sess, err := h.SessionService.JoinSession(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sess)
}

// UpdateSessionHandler handles PATCH /api/sessions/:id.
func (h *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var patch models.SessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.SessionService.UpdateSession(c.Request.Context(), c.Param("id"), uid, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, sess)
}

// DeleteSessionHandler handles DELETE /api/sessions/:id.
func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.SessionService.DeleteSession(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session deleted"})
}

// SessionMatchesHandler handles GET /api/sessions/:id/matches.
func (h *SessionHandler) SessionMatchesHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	matches, err := h.SessionService.FindMatches(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, matches)
}
