package handlers

import (
	"net/http"

	"studybuddy/services/chat"
	"studybuddy/services/matching"
	"studybuddy/services/notification"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchHandler serves recommendations and match confirmation. Chats,
// Notifier and Metrics are optional.
type MatchHandler struct {
	Matcher  matching.MatchingService
	Chats    chat.ChatService
	Notifier notification.NotificationService
	Metrics  *utils.Collector
}

func NewMatchHandler(m matching.MatchingService, chats chat.ChatService, n notification.NotificationService, metrics *utils.Collector) *MatchHandler {
	return &MatchHandler{Matcher: m, Chats: chats, Notifier: n, Metrics: metrics}
}

type confirmRequest struct {
	UID string `json:"uid" binding:"required"`
}

// RecommendationsHandler handles GET /api/matches/recommendations.
func (h *MatchHandler) RecommendationsHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	recs, err := h.Matcher.GenerateRecommendations(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecommendationsGenerated.Add(float64(len(recs)))
	}
	respondOK(c, http.StatusOK, recs)
}

// ConfirmHandler handles POST /api/matches/confirm. After confirming it
// opens a chat for the pair and tells the other user.
func (h *MatchHandler) ConfirmHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	m, err := h.Matcher.ConfirmMatch(ctx, uid, req.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.MatchesConfirmed.Inc()
	}

	resp := gin.H{"match": m}
	logger := utils.GetLogger()
	if h.Chats != nil {
		room, err := h.Chats.EnsureChatRoom(ctx, uid, req.UID, "")
		if err != nil {
			logger.Warn("Failed to open chat for confirmed match", zap.String("matchId", m.MatchID), zap.Error(err))
		} else {
			resp["chat"] = room
		}
	}
	if h.Notifier != nil {
		err := h.Notifier.NotifyUser(ctx, req.UID, "It's a match!", "Someone confirmed a study match with you",
			map[string]string{"type": "match_confirmed", "matchId": m.MatchID})
		if err != nil {
			logger.Warn("Push notification failed", zap.String("uid", req.UID), zap.Error(err))
		}
	}
	respondOK(c, http.StatusOK, resp)
}

// ListMatchesHandler handles GET /api/matches.
func (h *MatchHandler) ListMatchesHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	matches, err := h.Matcher.ListMatches(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, matches)
}

// OverlapHandler handles GET /api/matches/overlap/:uid.
func (h *MatchHandler) OverlapHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	slots, err := h.Matcher.SuggestTimes(c.Request.Context(), uid, c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, slots)
}
