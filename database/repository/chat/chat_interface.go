package chatRepo

import (
	"context"
	"errors"
	"time"

	"studybuddy/models"
)

var ErrNotFound = errors.New("chat not found")

// ChatRepository persists chats and their messages.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) (string, error)
	// GetByID returns the chat or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Chat, error)
	// ListByMember returns chats containing uid, most recently updated first.
	ListByMember(ctx context.Context, uid string) ([]models.Chat, error)
	// FindByMembers returns a chat containing both users, or (nil, nil).
	FindByMembers(ctx context.Context, a, b string) (*models.Chat, error)
	RemoveMember(ctx context.Context, id, uid string, at time.Time) error
	// AddMessage stores msg and bumps the chat's updatedAt to msg.Timestamp.
	AddMessage(ctx context.Context, msg *models.Message) (string, error)
	// ListMessages returns a chat's messages oldest first.
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
}
