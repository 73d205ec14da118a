package chat

import (
	"context"
	"time"

	chatRepo "studybuddy/database/repository/chat"
	"studybuddy/models"
	"studybuddy/services/notification"

	"go.uber.org/zap"
)

type SendMessageInput struct {
	Text string `json:"text" binding:"required"`
}

type ChatService interface {
	ListChats(ctx context.Context, uid string) ([]models.Chat, error)
	ListMessages(ctx context.Context, chatID, uid string) ([]models.Message, error)
	SendMessage(ctx context.Context, chatID, uid, text string) (*models.Message, error)
	LeaveChat(ctx context.Context, chatID, uid string) error
	EnsureChatRoom(ctx context.Context, a, b, sessionID string) (*models.Chat, error)
}

type DefaultChatService struct {
	Repo     chatRepo.ChatRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger
	Now      func() time.Time
}
