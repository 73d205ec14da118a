package handlers

import (
	"net/http"

	"studybuddy/services/chat"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	ChatService chat.ChatService
	Metrics     *utils.Collector
}

func NewChatHandler(cs chat.ChatService, metrics *utils.Collector) *ChatHandler {
	return &ChatHandler{ChatService: cs, Metrics: metrics}
}

// ListChatsHandler handles GET /api/chats.
func (h *ChatHandler) ListChatsHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	chats, err := h.ChatService.ListChats(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, chats)
}

// ListMessagesHandler handles GET /api/chats/:id/messages.
func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	msgs, err := h.ChatService.ListMessages(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, msgs)
}

// SendMessageHandler handles POST /api/chats/:id/messages.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in chat.SendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.ChatService.SendMessage(c.Request.Context(), c.Param("id"), uid, in.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.MessagesSent.Inc()
	}
	respondOK(c, http.StatusCreated, msg)
}

// LeaveChatHandler handles DELETE /api/chats/:id.
func (h *ChatHandler) LeaveChatHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.ChatService.LeaveChat(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Left chat"})
}
