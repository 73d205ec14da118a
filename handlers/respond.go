package handlers

import (
	"errors"
	"net/http"

	"studybuddy/middleware"
	"studybuddy/models"
	"studybuddy/services/availability"
	"studybuddy/services/chat"
	"studybuddy/services/identity"
	"studybuddy/services/matching"
	"studybuddy/services/request"
	"studybuddy/services/session"
	"studybuddy/services/storage"
	"studybuddy/services/user"
	"studybuddy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorStatus maps service sentinels onto HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{availability.ErrMalformedSlot, http.StatusBadRequest},
	{identity.ErrInvalidToken, http.StatusUnauthorized},
	{identity.ErrEmailExists, http.StatusConflict},
	{storage.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{user.ErrProfileNotFound, http.StatusNotFound},
	{user.ErrInvalidProfile, http.StatusBadRequest},
	{user.ErrEmptyUpdate, http.StatusBadRequest},

	{matching.ErrProfileNotFound, http.StatusNotFound},
	{matching.ErrMatchNotFound, http.StatusNotFound},
	{matching.ErrSelfMatch, http.StatusBadRequest},

	{session.ErrSessionNotFound, http.StatusNotFound},
	{session.ErrNotCreator, http.StatusForbidden},
	{session.ErrSessionClosed, http.StatusConflict},
	{session.ErrAlreadyJoined, http.StatusConflict},
	{session.ErrInvalidSession, http.StatusBadRequest},

	{request.ErrRequestNotFound, http.StatusNotFound},
	{request.ErrTargetNotFound, http.StatusNotFound},
	{request.ErrSelfRequest, http.StatusBadRequest},
	{request.ErrInvalidAction, http.StatusBadRequest},
	{request.ErrSessionUnavailable, http.StatusConflict},
	{request.ErrDuplicateRequest, http.StatusConflict},
	{request.ErrAlreadyResponded, http.StatusConflict},
	{request.ErrNotTarget, http.StatusForbidden},

	{chat.ErrChatNotFound, http.StatusNotFound},
	{chat.ErrNotMember, http.StatusForbidden},
	{chat.ErrEmptyMessage, http.StatusBadRequest},
	{chat.ErrSelfChat, http.StatusBadRequest},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{Success: true, Data: data})
}

// respondError writes {"success":false,"error":...}. Unmapped errors are
// logged and hidden behind a generic 500 message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.Error(err),
		)
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, utils.NewErrorResponse(msg))
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
}

// currentUser returns the uid set by middleware.FirebaseAuth.
func currentUser(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.ContextUserID)
	if uid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse("Insufficient authorization"))
		return "", false
	}
	return uid, true
}
