package request

import (
	"context"
	"time"

	requestRepo "studybuddy/database/repository/request"
	sessionRepo "studybuddy/database/repository/session"
	userRepo "studybuddy/database/repository/user"
	"studybuddy/models"
	"studybuddy/services/notification"

	"go.uber.org/zap"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

type SendRequestInput struct {
	TargetUID string `json:"targetUid" binding:"required"`
	SessionID string `json:"sessionId" binding:"required"`
}

type RespondInput struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

// RespondResult carries the updated request and, on accept, the chat opened
// for the pair.
type RespondResult struct {
	Request *models.MatchRequest `json:"request"`
	Chat    *models.Chat         `json:"chat,omitempty"`
}

// ChatOpener creates or reuses a chat for two users.
type ChatOpener interface {
	EnsureChatRoom(ctx context.Context, a, b, sessionID string) (*models.Chat, error)
}

// SessionCloser marks a session as matched.
type SessionCloser interface {
	MarkMatched(ctx context.Context, id string) error
}

type RequestService interface {
	SendRequest(ctx context.Context, requesterUID string, in SendRequestInput) (*models.MatchRequest, error)
	ListIncoming(ctx context.Context, uid string) ([]models.MatchRequest, error)
	Respond(ctx context.Context, id, uid, action string) (*RespondResult, error)
}

type DefaultRequestService struct {
	Repo     requestRepo.RequestRepository
	Sessions sessionRepo.SessionRepository
	Users    userRepo.UserRepository
	Closer   SessionCloser
	Chats    ChatOpener
	Notifier notification.NotificationService
	Logger   *zap.Logger
	Now      func() time.Time
}
